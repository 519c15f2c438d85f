package constants

import "time"

const (
	AppName           = "hourlog"
	Version           = "v0.1.0"
	DefaultConfigPath = "~/.config/hourlog/hourlog.db"
	DefaultConfigFile = "~/.config/hourlog/config.json"

	// DateFormat is the calendar-day key used for partitioning entries (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is how entry timestamps are persisted
	TimestampFormat = time.RFC3339Nano

	// Capacity rule
	DayCapacityHours = 24.0
	HoursEpsilon     = 0.01

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "hourlog-"
	BackupFileSuffix = ".db"

	// Storage backends
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

// Built-in activities
const (
	ActivitySleep    = "Sleep"
	ActivityExercise = "Exercise"
	ActivityStudy    = "Study"
	ActivityWork     = "Work"
	ActivityCustom   = "Custom"
)

// BuiltinActivities lists the fixed activities in the order they are offered to the user.
var BuiltinActivities = []string{
	ActivitySleep,
	ActivityExercise,
	ActivityStudy,
	ActivityWork,
}

// BaseColors maps built-in activities to their fixed chart colors.
var BaseColors = map[string]string{
	ActivitySleep:    "#4299e1",
	ActivityExercise: "#00ffff",
	ActivityStudy:    "#63b3ed",
	ActivityWork:     "#e53e3e",
	ActivityCustom:   "#a020f0",
}
