package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/render"
	"github.com/julianstephens/hourlog/internal/validation"
)

const defaultBarWidth = 30

type TodayCmd struct {
	Width int `help:"Bar width in cells." default:"30"`
}

func (c *TodayCmd) Run(app *Context, ctx context.Context) error {
	return renderToday(app, ctx, c.Width)
}

func printToday(app *Context, ctx context.Context) error {
	return renderToday(app, ctx, defaultBarWidth)
}

func renderToday(app *Context, ctx context.Context, width int) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}
	view, err := session.Snapshot(ctx)
	if err != nil {
		return err
	}

	app.printf("Today (%s)\n\n", view.Today)
	app.println(render.Today(view.Rows, view.DayTotal, width))
	if remaining := validation.Remaining(view.DayTotal); len(view.Rows) > 0 && remaining > 0 {
		app.printf("%.2fh left today\n", remaining)
	}
	return nil
}

type HistoryCmd struct {
	Days int `help:"Only show the last N days (0 for all)." default:"0"`
}

func (c *HistoryCmd) Run(app *Context, ctx context.Context) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}
	view, err := session.Snapshot(ctx)
	if err != nil {
		return err
	}

	history := view.History
	if c.Days > 0 {
		cutoff := session.Now().In(session.Location()).AddDate(0, 0, -c.Days).Format(constants.DateFormat)
		start := len(history)
		for i, e := range history {
			if e.Day(session.Location()) >= cutoff {
				start = i
				break
			}
		}
		history = history[start:]
	}

	app.println(render.History(history, session.Location(), session.Palette()))
	return nil
}

type ChartCmd struct {
	Width int `help:"Width of a full 24h bar in cells." default:"48"`
}

func (c *ChartCmd) Run(app *Context, ctx context.Context) error {
	if c.Width < 10 {
		return fmt.Errorf("width must be at least 10")
	}

	session, err := app.Session(ctx)
	if err != nil {
		return err
	}
	view, err := session.Snapshot(ctx)
	if err != nil {
		return err
	}
	app.println(render.Chart(view.Chart, c.Width))
	return nil
}
