package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLogPath(t *testing.T) {
	got := DefaultLogPath(filepath.Join("home", "me", ".config", "hourlog", "hourlog.db"))
	want := filepath.Join("home", "me", ".config", "hourlog", "logs", "hourlog.log")
	if got != want {
		t.Errorf("DefaultLogPath = %q, want %q", got, want)
	}
}

func TestInit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "config", "logs", "hourlog.log")

	if err := Init(Config{LogPath: logPath}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Close() })

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("entry added", "activity", "Work", "hours", 2.5)

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "entry added") {
		t.Errorf("log file does not contain the message, got %q", string(data))
	}
}

func TestDebugFilteredOutsideDebugMode(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hourlog.log")

	if err := Init(Config{LogPath: logPath}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Close() })

	Debug("hidden detail")
	Warn("visible warning")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "hidden detail") {
		t.Error("debug message written outside debug mode")
	}
	if !strings.Contains(string(data), "visible warning") {
		t.Error("warning message missing from log file")
	}
}

func TestJSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hourlog.log")

	if err := Init(Config{LogPath: logPath, Format: FormatJSON}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Close() })

	Info("entry deleted", "id", 7)

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", line, err)
	}
	if record["msg"] != "entry deleted" {
		t.Errorf("unexpected msg field: %v", record["msg"])
	}
}

func TestCloseResetsLogger(t *testing.T) {
	if err := Init(Config{LogPath: filepath.Join(t.TempDir(), "hourlog.log")}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if Logger != nil {
		t.Error("Logger should be nil after Close")
	}
	if err := Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
