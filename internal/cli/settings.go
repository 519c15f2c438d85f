package cli

import (
	"context"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(app *Context, ctx context.Context) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}
	settings, err := session.Store().GetSettings(ctx)
	if err != nil {
		return err
	}

	app.printf("Storage:  %s\n", session.Store().Path())
	app.printf("Timezone: %s\n", settings.Timezone)
	if app.Timezone != "" {
		app.printf("          (overridden by --timezone %s)\n", app.Timezone)
	}
	app.printf("Today:    %s\n", session.Today())
	return nil
}

type SettingsSetTimezoneCmd struct {
	Timezone string `arg:"" help:"IANA timezone name, or Local."`
}

func (c *SettingsSetTimezoneCmd) Run(app *Context, ctx context.Context) error {
	session, err := app.Session(ctx)
	if err != nil {
		return err
	}
	if err := session.SetTimezone(ctx, c.Timezone); err != nil {
		return err
	}
	app.printf("✓ Timezone set to %s\n", c.Timezone)
	return nil
}
