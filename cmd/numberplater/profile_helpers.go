package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numberplater/internal/prof"
)

// setupProfiling starts the profilers named by the persistent profiling
// flags and registers their shutdown.
func (a *app) setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()

	var opts prof.Options
	var err error
	if opts.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}

	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	errOut := cmd.ErrOrStderr()
	a.onClose(func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(errOut, "failed to write profiles: %v\n", err)
		}
	})
	return nil
}
