package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/henrybloomingdale/trialharvest/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

// configInitCmd writes the default configuration template so the operator
// only needs to fill in contact_email and adjust clauses.
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileName + ".yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists; refusing to overwrite", path)
		}

		body, err := config.Template()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Printf("Wrote %s — set contact_email before running.\n", path)
		return nil
	},
}
