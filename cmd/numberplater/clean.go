package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the scan cache",
		Long:  "Remove every cached scan result. The next scan renders all word lists again.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			disk, err := a.openCache()
			if err != nil {
				return fmt.Errorf("failed to open cache: %w", err)
			}
			if err := disk.DropAll(); err != nil {
				return fmt.Errorf("failed to clear %q: %w", disk.Dir(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", disk.Dir())
			return nil
		},
	}
}
