package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Backup on startup, after a successful load
	ctx.PerformAutomaticBackup()

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	model, err := tui.NewModel(ctx.Service, ctx.AI(context.Background()), settings.Theme)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
