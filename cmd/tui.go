package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvk/internal/shared"
	"github.com/desertthunder/mvk/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive collection browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Logging.File
	if logPath == "" {
		logPath = "./tmp/mvk-tui.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	lib, err := r.openLibrary()
	if err != nil {
		return err
	}

	flow, err := r.intakeFlow()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, lib, flow, r.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
