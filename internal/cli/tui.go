package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hourlog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(app *Context, ctx context.Context) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}

	app.PerformAutomaticBackup(ctx)

	p := tea.NewProgram(tui.NewModel(ctx, session), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
