// Package cmd defines the dms command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

const (
	groupAuth      = "auth"
	groupDocuments = "documents"
	groupAdmin     = "admin"
	groupSetup     = "setup"
)

var rootCmd = &cobra.Command{
	Use:   "dms",
	Short: "terminal client for the document-management system",
	Long: `dms - terminal client for the document-management system
  - upload, search, approve and manage documents from the shell
  - browse any resource interactively with search and pagination`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupAuth, Title: "Authentication:"},
		&cobra.Group{ID: groupDocuments, Title: "Documents:"},
		&cobra.Group{ID: groupAdmin, Title: "Administration:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(newNamedResourceCmd("branch", "branches", "Manage branches", app.branches))
	rootCmd.AddCommand(newNamedResourceCmd("department", "departments", "Manage departments", app.departments))
	rootCmd.AddCommand(newNamedResourceCmd("role", "roles", "Manage roles", app.roles))
	rootCmd.AddCommand(newNamedResourceCmd("category", "categories", "Manage document categories", app.categories))
	rootCmd.AddCommand(newNamedResourceCmd("doctype", "document types", "Manage document types", app.docTypes))
	rootCmd.AddCommand(newNamedResourceCmd("year", "years", "Manage filing years", app.years))
	rootCmd.AddCommand(employeeCmd)
}
