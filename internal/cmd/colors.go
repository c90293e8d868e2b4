package cmd

import (
	"os"

	"github.com/muesli/termenv"
)

// ANSI color codes for plain (non-TUI) output.
var (
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

func init() {
	if shouldDisableColors() {
		disableColors()
	}
}

// applyColorMode applies the configured color mode ("auto" leaves the
// init-time detection in place).
func applyColorMode(mode string) {
	switch mode {
	case "never":
		disableColors()
	case "always":
		// Re-enable in case detection disabled them.
		colorRed = "\033[0;31m"
		colorGreen = "\033[0;32m"
		colorYellow = "\033[0;33m"
		colorDim = "\033[2m"
		colorBold = "\033[1m"
		colorReset = "\033[0m"
	}
}

func disableColors() {
	colorRed = ""
	colorGreen = ""
	colorYellow = ""
	colorDim = ""
	colorBold = ""
	colorReset = ""
}

func shouldDisableColors() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return true
	}
	return termenv.NewOutput(os.Stdout).ColorProfile() == termenv.Ascii
}
