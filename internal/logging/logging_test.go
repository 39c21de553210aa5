package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/finadvise/finadvise/internal/config"
)

func TestNewJSONLogger(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: slog.LevelInfo, Format: "json"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger == nil {
		t.Fatal("expected a logger")
	}
}

func TestNewTextLogger(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: slog.LevelDebug, Format: "text"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be enabled")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: slog.LevelInfo, Format: "yaml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: slog.LevelWarn, Format: "json"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be filtered at warn level")
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should pass at warn level")
	}
}
