package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sh-bo/dms-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config [key] [value]",
	Short:   "Get or set configuration values",
	GroupID: groupSetup,
	Long: `Get or set dms configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/dms/config.yaml (XDG compliant).

Examples:
  dms config                               # List all keys
  dms config api.base_url                  # Get the backend URL
  dms config api.base_url https://dms.example.com/api
  dms config ui.page_size 20`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch len(args) {
	case 0:
		return listConfig(cfg, paths)
	case 1:
		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.SaveToFile(paths.ConfigFile()); err != nil {
			return err
		}
		fmt.Printf("%s%s%s = %s\n", colorBold, args[0], colorReset, args[1])
		return nil
	}
	return nil
}

func listConfig(cfg *config.Config, paths *config.Paths) error {
	fmt.Printf("%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))

	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		if value == "" {
			value = colorDim + "(not set)" + colorReset
		}
		fmt.Printf("  %s = %s\n", key, value)
	}

	fmt.Println()
	fmt.Printf("Config file: %s\n", paths.ConfigFile())
	return nil
}
