package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"numberplater/internal/observ"
	"numberplater/internal/pipeline"
)

func wantTimings(cmd *cobra.Command) bool {
	show, err := cmd.Root().PersistentFlags().GetBool("timings")
	return err == nil && show
}

// stageTimer turns summed scan stage durations into a timer report.
func stageTimer(timings pipeline.Timings) *observ.Timer {
	timer := observ.NewTimer()
	for _, stage := range pipeline.Stages {
		if timings.Has(stage) {
			timer.Record(string(stage), timings.Duration(stage), "")
		}
	}
	return timer
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}
