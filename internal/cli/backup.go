package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/logger"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(app *Context, ctx context.Context) error {
	mgr, err := app.backupManager()
	if err != nil {
		return err
	}
	if err := app.Store.Load(ctx); err != nil {
		return err
	}

	backupPath, err := mgr.Create(ctx)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	app.printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(app *Context, ctx context.Context) error {
	mgr, err := app.backupManager()
	if err != nil {
		return err
	}

	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		app.println("No backups found.")
		app.printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	app.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		app.printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	app.printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(app *Context, ctx context.Context) error {
	mgr, err := app.backupManager()
	if err != nil {
		return err
	}

	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		candidate := filepath.Join(mgr.Dir(), c.BackupFile)
		if _, err := os.Stat(candidate); err == nil {
			backupPath = candidate
		}
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes {
		app.println("⚠️  WARNING: This will replace your current log with the backup.")
		app.println("A backup of your current log will be created before restoring.")
		ok, err := app.confirm(fmt.Sprintf("Restore from %s?", filepath.Base(backupPath)))
		if err != nil {
			return err
		}
		if !ok {
			app.println("Restore cancelled.")
			return nil
		}
	}

	if err := app.Close(); err != nil {
		logger.Warn("failed to close database before restore", "error", err)
	}

	safety, err := mgr.Restore(ctx, backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if safety != "" {
		app.printf("Created backup of current log: %s\n", filepath.Base(safety))
	}
	app.println("✓ Log restored successfully!")
	return nil
}
