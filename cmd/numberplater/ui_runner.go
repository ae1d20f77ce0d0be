package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"numberplater/internal/pipeline"
	"numberplater/internal/scan"
	"numberplater/internal/ui"
)

type scanOutcome struct {
	result scan.Result
	err    error
}

func runScanWithUI(ctx context.Context, title string, req scan.Request) (scan.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		req.Progress = pipeline.ChannelSink{Ch: events}
		res, err := scan.Run(ctx, req)
		outcomeCh <- scanOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	final, uiErr := program.Run()
	if ui.Interrupted(final) {
		cancel()
	}
	// keep the scan from blocking on a full channel once the UI is gone
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
