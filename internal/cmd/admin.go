package cmd

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sh-bo/dms-cli/internal/api"
	"github.com/sh-bo/dms-cli/internal/gateway"
	"github.com/sh-bo/dms-cli/internal/list"
	"github.com/sh-bo/dms-cli/internal/tui"
)

// namedPayload is the create/update body for the flat admin resources.
type namedPayload struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// newNamedResourceCmd builds the command family for one flat admin
// resource (branch, department, role, category, doctype, year). All
// of them share the same shape, so one builder serves six screens.
func newNamedResourceCmd(use, plural, short string, res func() (*api.Resource[api.NamedEntity], error)) *cobra.Command {
	parent := &cobra.Command{
		Use:     use,
		Short:   short,
		GroupID: groupAdmin,
	}

	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + plural,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := res()
			if err != nil {
				return err
			}
			if _, err := app.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			items, err := r.FindAll(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(items)
			}
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, []string{
					strconv.FormatInt(it.ID, 10), it.Name, it.Code, activeLabel(it.Active.Bool()),
				})
			}
			table([]string{"ID", "NAME", "CODE", "STATUS"}, rows)
			return nil
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	var addName, addCode string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a " + use,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addName == "" {
				return fmt.Errorf("--name is required")
			}
			r, err := res()
			if err != nil {
				return err
			}
			if _, err := app.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			created, err := r.Save(cmd.Context(), namedPayload{Name: addName, Code: addCode})
			if err != nil {
				return err
			}
			fmt.Printf("%screated%s %s %d: %s\n", colorGreen, colorReset, use, created.ID, created.Name)
			return nil
		},
	}
	addCmd.Flags().StringVar(&addName, "name", "", use+" name (required)")
	addCmd.Flags().StringVar(&addCode, "code", "", use+" code")

	var updName, updCode string
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if updName == "" && updCode == "" {
				return fmt.Errorf("nothing to update: pass --name or --code")
			}
			r, err := res()
			if err != nil {
				return err
			}
			if _, err := app.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			updated, err := r.Update(cmd.Context(), id, namedPayload{Name: updName, Code: updCode})
			if err != nil {
				return err
			}
			fmt.Printf("%supdated%s %s %d: %s\n", colorGreen, colorReset, use, updated.ID, updated.Name)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&updName, "name", "", "new name")
	updateCmd.Flags().StringVar(&updCode, "code", "", "new code")

	var toggleYes bool
	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a " + use + "'s active status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNamedMutation(cmd, res, args[0], toggleYes, gateway.KindToggleStatus)
		},
	}
	toggleCmd.Flags().BoolVarP(&toggleYes, "yes", "y", false, "skip confirmation")

	var removeYes bool
	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNamedMutation(cmd, res, args[0], removeYes, gateway.KindDelete)
		},
	}
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "skip confirmation")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse " + plural + " interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := res()
			if err != nil {
				return err
			}
			if _, err := app.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			return runBrowse(namedScreen(plural, r))
		},
	}

	parent.AddCommand(listCmd, addCmd, updateCmd, toggleCmd, removeCmd, browseCmd)
	return parent
}

// runNamedMutation loads the collection, locates the target, asks for
// confirmation, and routes the mutation through the gateway.
func runNamedMutation(cmd *cobra.Command, res func() (*api.Resource[api.NamedEntity], error), rawID string, assumeYes bool, kind gateway.MutationKind) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", rawID)
	}
	r, err := res()
	if err != nil {
		return err
	}
	if _, err := app.requireAdmin(cmd.Context()); err != nil {
		return err
	}

	items, err := r.FindAll(cmd.Context())
	if err != nil {
		return err
	}
	ctl := list.New[api.NamedEntity](app.cfg.UI.PageSize)
	ctl.SetItems(items)
	gw := gateway.New(r, ctl)
	gate := gateway.NewGate(gw)

	var target *api.NamedEntity
	for _, it := range items {
		if it.ID == id {
			target = &it
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no record with id %d", id)
	}

	verb := "delete"
	if kind == gateway.KindToggleStatus {
		verb = "deactivate"
		if !target.Active.Bool() {
			verb = "activate"
		}
	}
	gate.Request(kind, *target)
	if !confirmPrompt(fmt.Sprintf("%s %q (id %d)?", verb, target.Name, id), assumeYes) {
		gate.Cancel()
		fmt.Println("cancelled")
		return nil
	}
	if err := gate.Confirm(cmd.Context()); err != nil {
		return err
	}
	fmt.Printf("%sdone%s\n", colorGreen, colorReset)
	return nil
}

// namedScreen builds the browse screen shared by the six flat admin
// resources.
func namedScreen(title string, r *api.Resource[api.NamedEntity]) tui.Screen[api.NamedEntity] {
	ctl := list.New[api.NamedEntity](app.cfg.UI.PageSize)
	gw := gateway.New(r, ctl)
	return tui.Screen[api.NamedEntity]{
		Title: title,
		Columns: []tui.Column{
			{Title: "ID", Width: 6},
			{Title: "NAME", Width: 28},
			{Title: "CODE", Width: 10},
			{Title: "STATUS", Width: 8},
		},
		Row: func(n api.NamedEntity) []string {
			status := "active"
			if !n.Active.Bool() {
				status = "inactive"
			}
			return []string{strconv.FormatInt(n.ID, 10), n.Name, n.Code, status}
		},
		Fetch:      r.FindAll,
		Controller: ctl,
		Gate:       gateway.NewGate(gw),
		ToggleLabel: func(n api.NamedEntity) string {
			if n.Active.Bool() {
				return "deactivate"
			}
			return "activate"
		},
		CanDelete: true,
	}
}

// runBrowse runs a browse screen to completion.
func runBrowse[T api.Entity](screen tui.Screen[T]) error {
	_, err := tea.NewProgram(tui.NewModel(screen), tea.WithAltScreen()).Run()
	return err
}
