package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/pkg/log"
)

// Dashboard runs the full-screen interface as a service. Closing it ends
// the process, so onExit is usually the root context's cancel.
type Dashboard struct {
	program *tea.Program
	onExit  func()
}

func NewDashboard(ctx context.Context, engine engine, router core.CmdRouter, opts Options, onExit func()) *Dashboard {
	model := New(ctx, engine, router, opts)
	return &Dashboard{
		program: tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)),
		onExit:  onExit,
	}
}

func (d *Dashboard) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("dashboard started")

	_, err := d.program.Run()
	if d.onExit != nil {
		d.onExit()
	}
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

func (d *Dashboard) Shutdown(ctx context.Context) error {
	d.program.Quit()
	return nil
}
