package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		enable slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"warn level", "warn", slog.LevelWarn},
		{"default info", "", slog.LevelInfo},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			if !logger.Enabled(ctx, tt.enable) {
				t.Fatalf("expected level %s to be enabled", tt.enable)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := Default()
	logger.Info("test message", "key", "value")

	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("Default() should enable info level")
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("Default() should not enable debug level (info is higher)")
	}
	if logger.Logger == nil {
		t.Fatal("Default() returned Logger with nil slog.Logger")
	}
}

func TestNewWithFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	logger := NewWithFile("info", path)
	logger.Info("lead accepted", "contact_id", "42")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "lead accepted") {
		t.Fatalf("expected log line in file, got %q", string(data))
	}
}

func TestNewWithFileBadPathFallsBack(t *testing.T) {
	logger := NewWithFile("info", filepath.Join(t.TempDir(), "missing", "dir", "bridge.log"))
	if logger == nil || logger.Logger == nil {
		t.Fatal("expected usable logger despite unopenable file")
	}
	logger.Info("still logging")
}

func TestNewWithFileEmptyPath(t *testing.T) {
	logger := NewWithFile("debug", "")
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug level enabled")
	}
}
