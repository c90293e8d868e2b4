// Package main is the entry point for the dms CLI.
package main

import (
	"os"

	"github.com/sh-bo/dms-cli/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
