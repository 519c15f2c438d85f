package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/constants"
	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/storage"
	"github.com/julianstephens/hourlog/internal/storage/kv"
	"github.com/julianstephens/hourlog/internal/storage/sqlite"
)

type CLI struct {
	Version    kong.VersionFlag `help:"Print version and exit."`
	ConfigFile kong.ConfigFlag  `help:"JSON file with default flag values."`
	DB         string           `name:"db" help:"Database file path." type:"path" env:"HOURLOG_DB" default:"${default_db}"`
	Backend    string           `help:"Storage backend." enum:"sqlite,diskv" env:"HOURLOG_BACKEND" default:"sqlite"`
	Timezone   string           `help:"IANA timezone used for 'today', overriding the stored setting." env:"HOURLOG_TZ"`
	Debug      bool             `help:"Log debug output to stderr." env:"HOURLOG_DEBUG"`
	LogFormat  string           `help:"Log file format." enum:"text,logfmt,json" env:"HOURLOG_LOG_FORMAT" default:"text"`

	Init     cli.InitCmd    `cmd:"" help:"Initialize hourlog storage."`
	Tui      cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add      cli.AddCmd     `cmd:"" help:"Log time for an activity today."`
	Edit     cli.EditCmd    `cmd:"" help:"Change the time or description of an entry."`
	Delete   cli.DeleteCmd  `cmd:"" help:"Delete an entry."`
	Move     cli.MoveCmd    `cmd:"" help:"Move one of today's entries up or down."`
	Swap     cli.SwapCmd    `cmd:"" help:"Swap the positions of two of today's entries."`
	Today    cli.TodayCmd   `cmd:"" help:"Show today's entries."`
	History  cli.HistoryCmd `cmd:"" help:"Show entries from previous days."`
	Chart    cli.ChartCmd   `cmd:"" help:"Show hours per day as a stacked chart."`
	Doctor   cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd cli.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings struct {
		Show        cli.SettingsShowCmd        `cmd:"" help:"Show current settings." default:"1"`
		SetTimezone cli.SettingsSetTimezoneCmd `cmd:"" help:"Store the timezone used for 'today'."`
	} `cmd:"" help:"Manage application settings."`
}

// newStore picks the storage backend. The diskv store lives in a directory
// next to the database file.
func newStore(backend, dbPath string) storage.Provider {
	if backend == constants.BackendDiskv {
		return kv.NewStore(strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + "-kv")
	}
	return sqlite.NewStore(dbPath)
}

func options(ctx context.Context) []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Local daily time log"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigFile),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Vars{
			"version":    constants.Version,
			"default_db": constants.DefaultConfigPath,
		},
	}
}

func main() {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var args CLI
	ctx := kong.Parse(&args, options(sigCtx)...)

	if err := logger.Init(logger.Config{
		Debug:   args.Debug,
		LogPath: logger.DefaultLogPath(args.DB),
		Format:  args.LogFormat,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	appCtx := &cli.Context{
		Store:    newStore(args.Backend, args.DB),
		Timezone: args.Timezone,
	}
	logger.Debug("starting", "command", ctx.Command(), "backend", args.Backend, "path", appCtx.Store.Path())

	err := ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("closing store failed", "error", cerr)
	}
	if err != nil {
		apperrors.Fatal(err)
	}
	logger.Close()
}
