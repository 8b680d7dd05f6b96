package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cite/internal/checker"
	"cite/internal/ui"
)

type checkOutcome struct {
	result *checker.Result
	err    error
}

func runCheckWithUI(ctx context.Context, title string, files []string, opts checker.Options) (*checker.Result, error) {
	events := make(chan checker.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = checker.ChannelSink{Ch: events}
		res, err := checker.Check(ctx, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
