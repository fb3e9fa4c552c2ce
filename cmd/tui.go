package main

import (
	"context"
	"fmt"

	"github.com/Dw4n7/Playlist/internal/session"
	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/Dw4n7/Playlist/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive playlist workspace.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.backend == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/badplay-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.backend, session.New(), fileLogger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
