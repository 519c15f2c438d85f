package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/utils"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" name:"db-path" help:"Show storage path."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump entries as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(app *Context) error {
	return writeJSON(app, map[string]string{
		"path": app.Store.Path(),
	})
}

type DebugDumpCmd struct {
	Day string `help:"Only dump entries of this date (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpCmd) Run(app *Context, ctx context.Context) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}
	view, err := session.Snapshot(ctx)
	if err != nil {
		return err
	}

	day := cmd.Day
	if day == "today" {
		day = view.Today
	}
	if day == "" {
		return writeJSON(app, view.Ordered)
	}

	if _, err := utils.ParseDay(day, session.Location()); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", day)
	}
	entries := []models.Entry{}
	for _, e := range view.Ordered {
		if e.Day(session.Location()) == day {
			entries = append(entries, e)
		}
	}
	return writeJSON(app, entries)
}

func writeJSON(app *Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	app.println(string(jsonBytes))
	return nil
}
