package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List benchmark versions and process life cycles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeStore, err := openEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		versions, err := e.Store().ListVersions(ctx)
		if err != nil {
			return err
		}
		ids, err := e.Store().ListLifeCycles(ctx)
		if err != nil {
			return err
		}

		p := printer(cmd)
		if err := p.Versions(versions); err != nil {
			return err
		}
		return p.LifeCycles(ids)
	},
}
