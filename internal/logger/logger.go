// Package logger keeps hourlog's diagnostic log. Output goes to a size-rotated
// file next to the database so the terminal stays clean for the TUI; --debug
// mirrors it to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/hourlog/internal/constants"
)

// Log formats accepted by Config.Format.
const (
	FormatText   = "text"
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

// Logger is nil until Init succeeds. The helpers below drop messages until then.
var Logger *log.Logger

var file *lumberjack.Logger

type Config struct {
	Debug bool
	// LogPath is the log file. Parent directories are created.
	LogPath string
	// Format is one of FormatText (default), FormatLogfmt or FormatJSON.
	Format string
}

// DefaultLogPath places the log in a logs directory beside the database.
func DefaultLogPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "logs", constants.AppName+".log")
}

func Init(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0755); err != nil {
		return err
	}

	file = &lumberjack.Logger{
		Filename:   cfg.LogPath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var w io.Writer = file
	if cfg.Debug {
		level = log.DebugLevel
		w = io.MultiWriter(os.Stderr, file)
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
		Formatter:       formatter(cfg.Format),
	})
	return nil
}

func formatter(name string) log.Formatter {
	switch name {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Close flushes and releases the log file.
func Close() error {
	Logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
