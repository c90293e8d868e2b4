package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sh-bo/dms-cli/internal/api"
	"github.com/sh-bo/dms-cli/internal/gateway"
	"github.com/sh-bo/dms-cli/internal/list"
	"github.com/sh-bo/dms-cli/internal/tui"
)

var docsCmd = &cobra.Command{
	Use:     "docs",
	Short:   "Upload, search and approve documents",
	GroupID: groupDocuments,
}

func init() {
	docsCmd.AddCommand(docsListCmd, docsUploadCmd, docsApproveCmd, docsRejectCmd,
		docsDownloadCmd, docsRemoveCmd, docsBrowseCmd)

	docsListCmd.Flags().BoolVar(&docsJSON, "json", false, "output as JSON")
	docsListCmd.Flags().StringVar(&docsSearch, "search", "", "filter by free-text search")

	docsUploadCmd.Flags().StringVar(&upload.file, "file", "", "path of the file to upload (required)")
	docsUploadCmd.Flags().StringVar(&upload.title, "title", "", "document title (required)")
	docsUploadCmd.Flags().StringVar(&upload.category, "category", "", "category name (required)")
	docsUploadCmd.Flags().StringVar(&upload.docType, "type", "", "document type (required)")
	docsUploadCmd.Flags().StringVar(&upload.year, "year", "", "filing year (required)")
	docsUploadCmd.Flags().StringVar(&upload.branch, "branch", "", "branch name (required)")
	docsUploadCmd.Flags().StringVar(&upload.department, "department", "", "department name (required)")
	docsUploadCmd.Flags().StringVar(&upload.remarks, "remarks", "", "optional remarks")

	docsRejectCmd.Flags().StringVar(&rejectRemarks, "remarks", "", "reason for rejection")

	docsDownloadCmd.Flags().StringVarP(&downloadOut, "output", "o", "", "output path (defaults to the stored file name)")

	docsRemoveCmd.Flags().BoolVarP(&docsRemoveYes, "yes", "y", false, "skip confirmation")
}

var (
	docsJSON   bool
	docsSearch string
)

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.requireSession(cmd.Context()); err != nil {
			return err
		}
		items, err := app.client.Documents().FindAll(cmd.Context())
		if err != nil {
			return err
		}

		// Same filter the browse screen applies, reusable from scripts.
		ctl := list.New[api.Document](len(items) + 1)
		ctl.SetItems(items)
		ctl.SetSearchTerm(docsSearch)
		visible := ctl.VisiblePage()

		if docsJSON {
			return writeJSON(visible)
		}
		rows := make([][]string, 0, len(visible))
		for _, d := range visible {
			status := colorYellow + "pending" + colorReset
			if d.Approved.Bool() {
				status = colorGreen + "approved" + colorReset
			}
			rows = append(rows, []string{
				strconv.FormatInt(d.ID, 10), d.FileNo, d.Title, d.Category, d.Year, d.Branch, status,
			})
		}
		table([]string{"ID", "FILE NO", "TITLE", "CATEGORY", "YEAR", "BRANCH", "STATUS"}, rows)
		return nil
	},
}

type uploadFlags struct {
	file, title, category, docType, year, branch, department, remarks string
}

var upload uploadFlags

// missingUploadFields returns the required flags that were not given.
// Validation happens locally; nothing is sent until every required
// field is filled.
func (u uploadFlags) missing() []string {
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"--file", u.file}, {"--title", u.title}, {"--category", u.category},
		{"--type", u.docType}, {"--year", u.year}, {"--branch", u.branch},
		{"--department", u.department},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

var docsUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if missing := upload.missing(); len(missing) > 0 {
			return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
		}
		if _, err := app.requireSession(cmd.Context()); err != nil {
			return err
		}

		f, err := os.Open(upload.file)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", upload.file, err)
		}
		defer f.Close()

		created, err := app.client.Documents().Upload(cmd.Context(), api.DocumentPayload{
			Title:      upload.title,
			Category:   upload.category,
			DocType:    upload.docType,
			Year:       upload.year,
			Branch:     upload.branch,
			Department: upload.department,
			Remarks:    upload.remarks,
		}, filepath.Base(upload.file), f)
		if err != nil {
			return err
		}
		fmt.Printf("%suploaded%s %s as %s (id %d)\n", colorGreen, colorReset, created.Title, created.FileNo, created.ID)
		return nil
	},
}

var docsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApproval(cmd, args[0], true, "")
	},
}

var rejectRemarks string

var docsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApproval(cmd, args[0], false, rejectRemarks)
	},
}

func runApproval(cmd *cobra.Command, rawID string, approved bool, remarks string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", rawID)
	}
	if _, err := app.requireAdmin(cmd.Context()); err != nil {
		return err
	}
	updated, err := app.client.Documents().SetApproval(cmd.Context(), id, approved, remarks)
	if err != nil {
		return err
	}
	verb := "rejected"
	if updated.Approved.Bool() {
		verb = "approved"
	}
	fmt.Printf("%s%s%s %s (%s)\n", colorGreen, verb, colorReset, updated.Title, updated.FileNo)
	return nil
}

var downloadOut string

var docsDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download a document's file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		if _, err := app.requireSession(cmd.Context()); err != nil {
			return err
		}

		data, err := app.client.Documents().Download(cmd.Context(), id)
		if err != nil {
			return err
		}
		out := downloadOut
		if out == "" {
			out = fmt.Sprintf("document-%d", id)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", out, err)
		}
		fmt.Printf("saved %s (%d bytes)\n", out, len(data))
		return nil
	},
}

// docMutator feeds document mutations to a gateway. Status changes go
// through the approval endpoint, which names its field "approved", not
// the "active" the generic updatestatus body carries, and takes
// remarks alongside; the toggle has no remarks to give.
type docMutator struct {
	*api.Documents
}

func (m docMutator) UpdateStatus(ctx context.Context, id int64, approved bool) (api.Document, error) {
	return m.SetApproval(ctx, id, approved, "")
}

var docsRemoveYes bool

var docsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		if _, err := app.requireAdmin(cmd.Context()); err != nil {
			return err
		}

		docs := app.client.Documents()
		items, err := docs.FindAll(cmd.Context())
		if err != nil {
			return err
		}
		ctl := list.New[api.Document](app.cfg.UI.PageSize)
		ctl.SetItems(items)
		gate := gateway.NewGate(gateway.New[api.Document](docMutator{docs}, ctl))

		var target *api.Document
		for _, d := range items {
			if d.ID == id {
				target = &d
				break
			}
		}
		if target == nil {
			return fmt.Errorf("no document with id %d", id)
		}

		gate.Request(gateway.KindDelete, *target)
		if !confirmPrompt(fmt.Sprintf("delete %q (%s)?", target.Title, target.FileNo), docsRemoveYes) {
			gate.Cancel()
			fmt.Println("cancelled")
			return nil
		}
		if err := gate.Confirm(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("%sdeleted%s\n", colorGreen, colorReset)
		return nil
	},
}

var docsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse documents interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := app.requireSession(cmd.Context())
		if err != nil {
			return err
		}

		docs := app.client.Documents()
		ctl := list.New[api.Document](app.cfg.UI.PageSize)
		gw := gateway.New[api.Document](docMutator{docs}, ctl)

		screen := tui.Screen[api.Document]{
			Title: "documents",
			Columns: []tui.Column{
				{Title: "ID", Width: 5},
				{Title: "FILE NO", Width: 12},
				{Title: "TITLE", Width: 30},
				{Title: "CATEGORY", Width: 14},
				{Title: "YEAR", Width: 6},
				{Title: "STATUS", Width: 9},
			},
			Row: func(d api.Document) []string {
				status := "pending"
				if d.Approved.Bool() {
					status = "approved"
				}
				return []string{
					strconv.FormatInt(d.ID, 10), d.FileNo, d.Title, d.Category, d.Year, status,
				}
			},
			Fetch:      docs.FindAll,
			Controller: ctl,
			Gate:       gateway.NewGate(gw),
			CanDelete:  sess.IsAdmin(),
		}
		if sess.IsAdmin() {
			screen.ToggleLabel = func(d api.Document) string {
				if d.Approved.Bool() {
					return "reject"
				}
				return "approve"
			}
		}
		return runBrowse(screen)
	},
}
