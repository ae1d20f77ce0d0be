package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"numberplater/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.FileName,
		Long: `init writes a commented ` + config.FileName + ` with every setting at its
default. The directory is created when missing. An existing file is kept
unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, args)
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing config")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	target := a.startDir
	if len(args) > 0 && args[0] != "." {
		target = args[0]
	}
	if target == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", target, err)
	}
	path, err := config.WriteDefault(target, force)
	if errors.Is(err, config.ErrExists) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", filepath.Base(path))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
