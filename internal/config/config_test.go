package config

import (
	"log/slog"
	"testing"
	"time"
)

var configEnvVars = []string{
	"PORT",
	"SERVER_PORT",
	"SERVER_READ_TIMEOUT_SECONDS",
	"SERVER_WRITE_TIMEOUT_SECONDS",
	"SERVER_SHUTDOWN_TIMEOUT_SECONDS",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"OPENAI_API_KEY",
	"OPENAI_MODEL",
	"OPENAI_TEMPERATURE",
	"OPENAI_MAX_TOKENS",
	"OPENAI_TIMEOUT_SECONDS",
	"OPENAI_MAX_RETRIES",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 60*time.Second {
		t.Errorf("write timeout = %v, want 60s", cfg.Server.WriteTimeout)
	}
	if cfg.Logging.Level != slog.LevelInfo {
		t.Errorf("log level = %v, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("log format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Completion.APIKey != "" {
		t.Errorf("api key should default to empty, got %q", cfg.Completion.APIKey)
	}
	if cfg.Completion.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", cfg.Completion.Model)
	}
	if cfg.Completion.CallTimeout != 30*time.Second {
		t.Errorf("call timeout = %v, want 30s", cfg.Completion.CallTimeout)
	}
	if cfg.Completion.MaxRetries != 2 {
		t.Errorf("max retries = %v, want 2", cfg.Completion.MaxRetries)
	}
	if cfg.Completion.BaseDelay != 500*time.Millisecond {
		t.Errorf("base delay = %v, want 500ms", cfg.Completion.BaseDelay)
	}
}

func TestLoadPortPrecedence(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SERVER_PORT", "9001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("PORT should take precedence, got %q", cfg.Server.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVER_READ_TIMEOUT_SECONDS", "20")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_TEMPERATURE", "0.7")
	t.Setenv("OPENAI_MAX_TOKENS", "2048")
	t.Setenv("OPENAI_TIMEOUT_SECONDS", "10")
	t.Setenv("OPENAI_MAX_RETRIES", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("read timeout = %v, want 20s", cfg.Server.ReadTimeout)
	}
	if cfg.Logging.Level != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("log format = %q, want text", cfg.Logging.Format)
	}
	if cfg.Completion.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.Completion.APIKey)
	}
	if cfg.Completion.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.Completion.Model)
	}
	if cfg.Completion.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", cfg.Completion.Temperature)
	}
	if cfg.Completion.MaxTokens != 2048 {
		t.Errorf("max tokens = %v, want 2048", cfg.Completion.MaxTokens)
	}
	if cfg.Completion.CallTimeout != 10*time.Second {
		t.Errorf("call timeout = %v, want 10s", cfg.Completion.CallTimeout)
	}
	if cfg.Completion.MaxRetries != 0 {
		t.Errorf("max retries = %v, want 0", cfg.Completion.MaxRetries)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric read timeout", "SERVER_READ_TIMEOUT_SECONDS", "abc"},
		{"negative write timeout", "SERVER_WRITE_TIMEOUT_SECONDS", "-5"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"unknown log format", "LOG_FORMAT", "xml"},
		{"temperature out of range", "OPENAI_TEMPERATURE", "3.5"},
		{"non-numeric temperature", "OPENAI_TEMPERATURE", "hot"},
		{"zero max tokens", "OPENAI_MAX_TOKENS", "0"},
		{"negative retries", "OPENAI_MAX_RETRIES", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		level, err := parseLogLevel(tt.raw)
		if err != nil {
			t.Errorf("parseLogLevel(%q) failed: %v", tt.raw, err)
			continue
		}
		if level != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.raw, level, tt.want)
		}
	}
}
