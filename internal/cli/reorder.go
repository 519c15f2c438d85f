package cli

import (
	"context"
	"fmt"
)

type MoveCmd struct {
	ID   int64 `arg:"" help:"Entry ID to move."`
	Up   bool  `xor:"direction" help:"Move one position up."`
	Down bool  `xor:"direction" help:"Move one position down."`
}

func (c *MoveCmd) Run(app *Context, ctx context.Context) error {
	delta := 0
	switch {
	case c.Up:
		delta = -1
	case c.Down:
		delta = 1
	default:
		return fmt.Errorf("choose a direction with --up or --down")
	}

	session, err := app.Session(ctx)
	if err != nil {
		return err
	}
	if err := session.Move(ctx, c.ID, delta); err != nil {
		return err
	}
	return printToday(app, ctx)
}

type SwapCmd struct {
	Source int64 `arg:"" help:"First entry ID."`
	Target int64 `arg:"" help:"Second entry ID."`
}

func (c *SwapCmd) Run(app *Context, ctx context.Context) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}
	if err := session.Reorder(ctx, c.Source, c.Target); err != nil {
		return err
	}
	return printToday(app, ctx)
}
