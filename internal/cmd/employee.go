package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sh-bo/dms-cli/internal/api"
	"github.com/sh-bo/dms-cli/internal/gateway"
	"github.com/sh-bo/dms-cli/internal/list"
	"github.com/sh-bo/dms-cli/internal/tui"
)

// employeePayload is the create/update body for user accounts.
type employeePayload struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	Password   string `json:"password,omitempty"`
	Role       string `json:"role,omitempty"`
	Branch     string `json:"branch,omitempty"`
	Department string `json:"department,omitempty"`
}

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Short:   "Manage user accounts",
	GroupID: groupAdmin,
}

var (
	empJSON      bool
	empAdd       employeePayload
	empUpd       employeePayload
	empToggleYes bool
	empRemoveYes bool
)

func init() {
	employeeCmd.AddCommand(empListCmd, empAddCmd, empUpdateCmd, empToggleCmd, empRemoveCmd, empBrowseCmd)

	empListCmd.Flags().BoolVar(&empJSON, "json", false, "output as JSON")

	empAddCmd.Flags().StringVar(&empAdd.Name, "name", "", "full name (required)")
	empAddCmd.Flags().StringVar(&empAdd.Email, "email", "", "email (required)")
	empAddCmd.Flags().StringVar(&empAdd.Mobile, "mobile", "", "mobile number")
	empAddCmd.Flags().StringVar(&empAdd.Password, "password", "", "initial password (required)")
	empAddCmd.Flags().StringVar(&empAdd.Role, "role", "USER", "role (ADMIN or USER)")
	empAddCmd.Flags().StringVar(&empAdd.Branch, "branch", "", "branch name")
	empAddCmd.Flags().StringVar(&empAdd.Department, "department", "", "department name")

	empUpdateCmd.Flags().StringVar(&empUpd.Name, "name", "", "new name")
	empUpdateCmd.Flags().StringVar(&empUpd.Email, "email", "", "new email")
	empUpdateCmd.Flags().StringVar(&empUpd.Mobile, "mobile", "", "new mobile number")
	empUpdateCmd.Flags().StringVar(&empUpd.Role, "role", "", "new role")
	empUpdateCmd.Flags().StringVar(&empUpd.Branch, "branch", "", "new branch")
	empUpdateCmd.Flags().StringVar(&empUpd.Department, "department", "", "new department")

	empToggleCmd.Flags().BoolVarP(&empToggleYes, "yes", "y", false, "skip confirmation")
	empRemoveCmd.Flags().BoolVarP(&empRemoveYes, "yes", "y", false, "skip confirmation")
}

var empListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.requireAdmin(cmd.Context()); err != nil {
			return err
		}
		items, err := app.client.Employees().FindAll(cmd.Context())
		if err != nil {
			return err
		}
		if empJSON {
			return writeJSON(items)
		}
		rows := make([][]string, 0, len(items))
		for _, e := range items {
			rows = append(rows, []string{
				strconv.FormatInt(e.ID, 10), e.Name, e.Email, e.Role, e.Branch, activeLabel(e.Active.Bool()),
			})
		}
		table([]string{"ID", "NAME", "EMAIL", "ROLE", "BRANCH", "STATUS"}, rows)
		return nil
	},
}

var empAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if empAdd.Name == "" || empAdd.Email == "" || empAdd.Password == "" {
			return fmt.Errorf("required fields missing: --name, --email and --password")
		}
		if _, err := app.requireAdmin(cmd.Context()); err != nil {
			return err
		}
		created, err := app.client.Employees().Save(cmd.Context(), empAdd)
		if err != nil {
			return err
		}
		fmt.Printf("%screated%s employee %d: %s\n", colorGreen, colorReset, created.ID, created.Name)
		return nil
	},
}

var empUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		if empUpd == (employeePayload{}) {
			return fmt.Errorf("nothing to update")
		}
		if _, err := app.requireAdmin(cmd.Context()); err != nil {
			return err
		}
		updated, err := app.client.Employees().Update(cmd.Context(), id, empUpd)
		if err != nil {
			return err
		}
		fmt.Printf("%supdated%s employee %d: %s\n", colorGreen, colorReset, updated.ID, updated.Name)
		return nil
	},
}

var empToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a user account's active status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEmployeeMutation(cmd, args[0], empToggleYes, gateway.KindToggleStatus)
	},
}

var empRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEmployeeMutation(cmd, args[0], empRemoveYes, gateway.KindDelete)
	},
}

func runEmployeeMutation(cmd *cobra.Command, rawID string, assumeYes bool, kind gateway.MutationKind) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", rawID)
	}
	if _, err := app.requireAdmin(cmd.Context()); err != nil {
		return err
	}

	employees := app.client.Employees()
	items, err := employees.FindAll(cmd.Context())
	if err != nil {
		return err
	}
	ctl := list.New[api.Employee](app.cfg.UI.PageSize)
	ctl.SetItems(items)
	gate := gateway.NewGate(gateway.New(employees, ctl))

	var target *api.Employee
	for _, e := range items {
		if e.ID == id {
			target = &e
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no employee with id %d", id)
	}

	verb := "delete"
	if kind == gateway.KindToggleStatus {
		verb = "deactivate"
		if !target.Active.Bool() {
			verb = "activate"
		}
	}
	gate.Request(kind, *target)
	if !confirmPrompt(fmt.Sprintf("%s %q?", verb, target.Name), assumeYes) {
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

var empBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse user accounts interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.requireAdmin(cmd.Context()); err != nil {
			return err
		}

		employees := app.client.Employees()
		ctl := list.New[api.Employee](app.cfg.UI.PageSize)
		gw := gateway.New(employees, ctl)

		return runBrowse(tui.Screen[api.Employee]{
			Title: "employees",
			Columns: []tui.Column{
				{Title: "ID", Width: 5},
				{Title: "NAME", Width: 22},
				{Title: "EMAIL", Width: 26},
				{Title: "ROLE", Width: 8},
				{Title: "BRANCH", Width: 14},
				{Title: "STATUS", Width: 8},
			},
			Row: func(e api.Employee) []string {
				status := "active"
				if !e.Active.Bool() {
					status = "inactive"
				}
				return []string{
					strconv.FormatInt(e.ID, 10), e.Name, e.Email, e.Role, e.Branch, status,
				}
			},
			Fetch:      employees.FindAll,
			Controller: ctl,
			Gate:       gateway.NewGate(gw),
			ToggleLabel: func(e api.Employee) string {
				if e.Active.Bool() {
					return "deactivate"
				}
				return "activate"
			},
			CanDelete: true,
		})
	},
}
