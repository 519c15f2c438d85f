package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/hourlog/internal/utils"
)

type AddCmd struct {
	Activity    string  `arg:"" help:"Activity: Sleep, Exercise, Study, Work or any custom label."`
	Hours       float64 `short:"H" help:"Whole or fractional hours." default:"0"`
	Minutes     float64 `short:"m" help:"Additional minutes." default:"0"`
	Description string  `short:"d" help:"Description (Work, Study and custom activities only)."`
}

func (c *AddCmd) Run(app *Context, ctx context.Context) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}

	e, err := session.Add(ctx, c.Activity, c.Hours, c.Minutes, c.Description)
	if err != nil {
		return err
	}
	app.printf("✓ Logged %s: %s (ID: %d)\n", e.Activity, utils.FormatHours(e.Hours), e.ID)
	return nil
}

type EditCmd struct {
	ID               int64  `arg:"" help:"Entry ID to edit."`
	Hours            string `short:"H" help:"New duration, as hours (1.5) or a duration (1h30m)."`
	Description      string `short:"d" help:"New description."`
	ClearDescription bool   `help:"Remove the description."`
}

func (c *EditCmd) Run(app *Context, ctx context.Context) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}

	proposal, err := session.ProposeEdit(ctx, c.ID)
	if err != nil {
		return err
	}

	hours := proposal.Entry.Hours
	if c.Hours != "" {
		if hours, err = parseHours(c.Hours); err != nil {
			return err
		}
	}

	description := proposal.Description
	switch {
	case c.ClearDescription:
		description = ""
	case c.Description != "":
		if !proposal.DescriptionEditable {
			return fmt.Errorf("%s entries do not take a description", proposal.Entry.Activity)
		}
		description = c.Description
	}

	e, err := session.ApplyEdit(ctx, c.ID, hours, description)
	if err != nil {
		return err
	}
	app.printf("✓ Updated %s (ID: %d): %s\n", e.Activity, e.ID, utils.FormatHours(e.Hours))
	return nil
}

type DeleteCmd struct {
	ID  int64 `arg:"" help:"Entry ID to delete."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(app *Context, ctx context.Context) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}

	e, err := session.Store().Get(ctx, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := app.confirm(fmt.Sprintf("Delete %s (%s) logged on %s?",
			e.Activity, utils.FormatHours(e.Hours), e.Day(session.Location())))
		if err != nil {
			return err
		}
		if !ok {
			app.println("Cancelled.")
			return nil
		}
	}

	if err := session.Delete(ctx, c.ID); err != nil {
		return err
	}
	app.printf("Deleted entry: %s (ID: %d)\n", e.Activity, c.ID)
	return nil
}
