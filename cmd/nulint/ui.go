package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"nulint/internal/driver"
	"nulint/internal/lint"
	"nulint/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type lintOutcome struct {
	result *driver.Result
	err    error
}

// runLintWithUI lints files while a progress display draws on stdout.
// The driver feeds per-file outcomes through a channel; closing it ends
// the display. Violations are rendered by the caller afterwards.
func runLintWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	opts.Progress = func(done, total int, fr *driver.FileResult) {
		ev := ui.Event{Path: fr.Path, Total: total, Failed: fr.Err != nil}
		ev.Errors, ev.Warnings, ev.Hints = lint.CountBySeverity(fr.Violations)
		events <- ev
	}

	go func() {
		res, err := driver.LintFiles(ctx, files, opts)
		outcomeCh <- lintOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewLintModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
