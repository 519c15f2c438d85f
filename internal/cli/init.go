package cli

import "context"

type InitCmd struct{}

func (c *InitCmd) Run(app *Context, ctx context.Context) error {
	if err := app.Store.Init(ctx); err != nil {
		return err
	}
	app.printf("Initialized hourlog storage at: %s\n", app.Store.Path())
	return nil
}
