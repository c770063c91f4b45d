package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCreatesLogDirectory(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("debug message")
	Info("info message")
	Warn("warning message")
	Error("error message")
}

func TestWarnLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("hidden detail")
	Warn("cache write failed", "key", "poem_3_cache")

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Errorf("debug record written at warn level: %q", out)
	}
	if !strings.Contains(out, "cache write failed") || !strings.Contains(out, "poem_3_cache") {
		t.Errorf("warn record missing from output: %q", out)
	}
}

func TestDebugModeWritesDebug(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Debug: true, Output: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("resolving poem", "day", 3)
	if !strings.Contains(buf.String(), "resolving poem") {
		t.Errorf("debug record missing: %q", buf.String())
	}
}

func TestComponentTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Component("resolver").Warn("remote miss")
	if !strings.Contains(buf.String(), "component=resolver") {
		t.Errorf("component key missing: %q", buf.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// None of these may panic before Init.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	Component("api").Error("discarded")
}
