package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// confirmPrompt asks for an explicit acknowledgment before a
// destructive action. assumeYes (the --yes flag) skips the prompt.
func confirmPrompt(msg string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s%s%s [y/N]: ", colorYellow, msg, colorReset)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// writeJSON pretty-prints v to stdout.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes aligned rows to stdout.
func table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, colorBold+strings.Join(header, "\t")+colorReset)
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// activeLabel renders the normalized boolean status flag.
func activeLabel(active bool) string {
	if active {
		return colorGreen + "active" + colorReset
	}
	return colorDim + "inactive" + colorReset
}
