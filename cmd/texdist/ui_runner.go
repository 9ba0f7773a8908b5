package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"texdist/internal/publish"
	"texdist/internal/ui"
)

type publishOutcome struct {
	result publish.Result
	err    error
}

func runWithUI(ctx context.Context, title string, req *publish.Request) (publish.Result, error) {
	if req == nil {
		return publish.Result{}, fmt.Errorf("missing publish request")
	}
	events := make(chan publish.Event, 256)
	outcomeCh := make(chan publishOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = publish.ChannelSink{Ch: events}
		res, err := publish.Run(ctx, &reqCopy)
		outcomeCh <- publishOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
