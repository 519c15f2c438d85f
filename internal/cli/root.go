package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hourlog/internal/backup"
	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/storage"
	"github.com/julianstephens/hourlog/internal/storage/sqlite"
	"github.com/julianstephens/hourlog/internal/tracker"
)

// Context is shared by every command.
type Context struct {
	Store    storage.Provider
	Timezone string
	// Now defaults to time.Now.
	Now func() time.Time
	// Out defaults to stdout.
	Out io.Writer
	// Confirm asks a yes/no question. nil means an interactive huh prompt.
	Confirm func(title string) (bool, error)

	session *tracker.Session
}

// Session opens the tracker session on first use.
func (c *Context) Session(ctx context.Context) (*tracker.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	s, err := tracker.Open(ctx, tracker.Config{
		Store:    c.Store,
		Now:      c.Now,
		Timezone: c.Timezone,
	})
	if err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

func (c *Context) Close() error {
	c.session = nil
	return c.Store.Close()
}

func (c *Context) printf(format string, args ...any) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}

func (c *Context) println(s string) {
	c.printf("%s\n", s)
}

func (c *Context) confirm(title string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title)
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// backupManager returns a manager for the SQLite file, or an error for
// backends that cannot be snapshotted.
func (c *Context) backupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for the sqlite backend")
	}
	return backup.NewManager(c.Store.Path()), nil
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup(ctx context.Context) {
	mgr, err := c.backupManager()
	if err != nil {
		logger.Debug("skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.Create(ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// parseHours accepts fractional hours ("1.5") or a Go duration ("1h30m").
func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "parse hours", fmt.Errorf("empty duration"))
	}
	if h, err := strconv.ParseFloat(s, 64); err == nil {
		return h, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "parse hours",
			fmt.Errorf("invalid duration %q, use hours like 1.5 or a duration like 1h30m", s))
	}
	return d.Hours(), nil
}
