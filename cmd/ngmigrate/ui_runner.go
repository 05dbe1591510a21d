package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"ngmigrate/internal/driver"
	"ngmigrate/internal/ui"
)

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

// runBatchWithUI runs a batch while a Bubble Tea program renders progress.
// The batch drives the UI through a channel; closing it quits the program.
func runBatchWithUI(ctx context.Context, title string, opts driver.BatchOptions) (*driver.BatchResult, error) {
	files, err := driver.ListSourceFiles(opts.Dir, opts.Exclude)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(files))
	for i, f := range files {
		if rel, err := filepath.Rel(opts.Dir, f); err == nil {
			labels[i] = rel
		} else {
			labels[i] = f
		}
	}

	events := make(chan ui.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(done, total int, report *driver.FileReport) {
			label := report.Path
			if rel, err := filepath.Rel(opts.Dir, report.Path); err == nil {
				label = rel
			}
			relReport := *report
			relReport.Path = label
			events <- ui.Event{Done: done, Total: total, Report: &relReport}
		}
		res, err := driver.Run(ctx, optsCopy)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, labels, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
