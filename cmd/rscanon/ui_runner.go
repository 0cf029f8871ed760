package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"rscanon/internal/driver"
	"rscanon/internal/ui"
)

type batchOutcome struct {
	report *driver.BatchReport
	err    error
}

// runBatchWithUI гоняет driver.Batch в горутине и показывает прогресс;
// канал событий закрывается после завершения прогона.
func runBatchWithUI(ctx context.Context, out io.Writer, title string, opts driver.BatchOptions) (*driver.BatchReport, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		report, err := driver.Batch(ctx, optsCopy)
		outcomeCh <- batchOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, opts.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// вид мог закрыться раньше прогона: дочитываем события, чтобы Batch не встал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err == nil && uiErr != nil && ctx.Err() != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
