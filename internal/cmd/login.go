package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sh-bo/dms-cli/internal/auth"
	"github.com/sh-bo/dms-cli/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in and store a session",
	GroupID: groupAuth,
	Long: `Log in to the document-management backend.

The flow asks for username, password and a locally generated captcha,
then for the one-time code the server sends you. On success the
session (token, name, role) is stored locally; every other command
reads it.`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := app.ensure(); err != nil {
		return err
	}

	flow := auth.NewFlow(app.client, app.store)
	final, err := tea.NewProgram(tui.NewLoginModel(flow)).Run()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	m, ok := final.(tui.LoginModel)
	if !ok {
		return errors.New("unexpected login result")
	}
	if m.Cancelled() {
		fmt.Println("login cancelled")
		return nil
	}
	sess, done := m.Session()
	if !done {
		return errors.New("login did not complete")
	}

	fmt.Printf("%swelcome, %s%s (%s)\n", colorGreen, sess.DisplayName, colorReset, sess.Role)
	fmt.Printf("try: dms %s\n", auth.LandingTarget(sess.Role))
	return nil
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Clear the stored session",
	GroupID: groupAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.ensure(); err != nil {
			return err
		}
		if err := app.store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show who is logged in",
	GroupID: groupAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := app.requireSession(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s%s%s\n", colorBold, sess.DisplayName, colorReset)
		fmt.Printf("  role:    %s\n", sess.Role)
		fmt.Printf("  user id: %d\n", sess.UserID)
		return nil
	},
}
