package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sh-bo/dms-cli/internal/api"
)

var (
	dashboardJSON     bool
	dashboardExpand   string
	dashboardCollapse string
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Short:   "Show per-resource record counts",
	GroupID: groupDocuments,
	Long: `Fetch the record count of every resource, grouped into the documents
and admin panels. Panels can be collapsed to a summary line; the
expanded/collapsed state is remembered across runs.

A resource that fails to load does not hide the others: partial
results are shown and each failure is reported on its own line.`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "output as JSON")
	dashboardCmd.Flags().StringVar(&dashboardExpand, "expand", "", "expand a panel (docs|admin) and remember it")
	dashboardCmd.Flags().StringVar(&dashboardCollapse, "collapse", "", "collapse a panel (docs|admin) and remember it")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	sess, err := app.requireSession(cmd.Context())
	if err != nil {
		return err
	}

	docsOpen, adminOpen := sess.DocsPanelExpanded, sess.AdminPanelExpanded
	changed := false
	for _, f := range []struct {
		panel string
		open  bool
	}{
		{dashboardExpand, true},
		{dashboardCollapse, false},
	} {
		switch f.panel {
		case "":
		case "docs":
			docsOpen, changed = f.open, true
		case "admin":
			adminOpen, changed = f.open, true
		default:
			return fmt.Errorf("unknown panel %q (want docs or admin)", f.panel)
		}
	}
	if changed {
		if err := app.store.SetPanels(cmd.Context(), docsOpen, adminOpen); err != nil {
			return err
		}
	}

	results := dashboardResults(cmd.Context())

	if dashboardJSON {
		type entry struct {
			Resource string `json:"resource"`
			Count    int    `json:"count"`
			Error    string `json:"error,omitempty"`
		}
		out := make([]entry, 0, len(results))
		for _, r := range results {
			e := entry{Resource: r.Resource, Count: r.Count}
			if r.Err != nil {
				e.Error = r.Err.Error()
			}
			out = append(out, e)
		}
		return writeJSON(out)
	}

	renderDashboard(os.Stdout, results, docsOpen, adminOpen)
	return nil
}

// dashboardResults prefers the backend's aggregate endpoint and falls
// back to counting each resource when it is unavailable.
func dashboardResults(ctx context.Context) []api.CountResult {
	counts, err := app.client.DashboardCounts(ctx)
	if err == nil {
		return counts.Results()
	}
	app.logger.Debug("aggregate counts unavailable, counting per resource", "error", err)
	return app.client.CountAll(ctx)
}

// The documents panel holds the document-side resources; everything
// else falls under the admin panel, mirroring the two sidebar sections.
func inDocsPanel(resource string) bool { return resource == "documents" }

func renderDashboard(w io.Writer, results []api.CountResult, docsOpen, adminOpen bool) {
	var docs, admin []api.CountResult
	for _, r := range results {
		if inDocsPanel(r.Resource) {
			docs = append(docs, r)
		} else {
			admin = append(admin, r)
		}
	}

	failed := 0
	failed += renderPanel(w, "documents", docs, docsOpen)
	failed += renderPanel(w, "admin", admin, adminOpen)
	if failed > 0 {
		fmt.Fprintf(w, "\n%s%d of %d resources failed to load%s\n", colorYellow, failed, len(results), colorReset)
	}
}

func renderPanel(w io.Writer, name string, results []api.CountResult, open bool) int {
	if !open {
		fmt.Fprintf(w, "%s%s%s (%d hidden, --expand %s)\n",
			colorBold, name, colorReset, len(results), panelFlag(name))
		return 0
	}
	fmt.Fprintf(w, "%s%s%s\n", colorBold, name, colorReset)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "  %-12s %serror: %v%s\n", r.Resource, colorRed, r.Err, colorReset)
			continue
		}
		fmt.Fprintf(w, "  %-12s %s%d%s\n", r.Resource, colorBold, r.Count, colorReset)
	}
	return failed
}

func panelFlag(name string) string {
	if name == "documents" {
		return "docs"
	}
	return name
}
