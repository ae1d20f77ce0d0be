package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"numberplater/internal/diagfmt"
	"numberplater/internal/yearcode"
)

func newYearsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "years",
		Short: "List the year codes current-format plates may carry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runYears(cmd)
		},
	}
	cmd.Flags().String("at", "", "date to evaluate (YYYY-MM-DD, UK time); defaults to now")
	cmd.Flags().String("format", "", "output format (pretty|plain|json); defaults to [output].format")
	return cmd
}

func (a *app) runYears(cmd *cobra.Command) error {
	at := a.now().In(yearcode.London)
	atStr, err := cmd.Flags().GetString("at")
	if err != nil {
		return err
	}
	if atStr != "" {
		at, err = time.ParseInLocation(time.DateOnly, atStr, yearcode.London)
		if err != nil {
			return fmt.Errorf("invalid --at value %q (expected YYYY-MM-DD)", atStr)
		}
	}
	formatStr := a.cfg.Output.Format
	if cmd.Flags().Changed("format") {
		if formatStr, err = cmd.Flags().GetString("format"); err != nil {
			return err
		}
	}
	format, err := diagfmt.ParseResultFormat(formatStr)
	if err != nil {
		return err
	}
	useColor, err := a.useColor(cmd)
	if err != nil {
		return err
	}
	codes := yearcode.NewCalculator(yearcode.FixedClock(at)).Issuable().Codes()
	return diagfmt.Years(cmd.OutOrStdout(), format, at, codes, useColor)
}
