package main

import (
	"fmt"
	"os"

	"github.com/IWUGERMANY/elca-sub014/factory"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import benchmark versions, process life cycles and project usages",
	Long: `Import reads definition documents and saves them in the database.

The document kind decides what is saved:
  benchmark_version           thresholds, usages, reference values, groups
  process_life_cycle          processes and conversions of a process config
  project_life_cycle_usages   usage overrides of one project

Files ending in .yaml or .yml are read as YAML, everything else as JSON.
Importing an existing ID replaces it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		doc, err := e.Import(cmd.Context(), data, factory.FormatFromPath(path))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s from %s\n", doc.Kind, path)
	}
	return nil
}
