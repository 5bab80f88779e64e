package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"stellaris-server/internal/shared/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelDebug},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	log.Debug("hidden")
	log.Info("galaxy ready", "systems", 12)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "galaxy ready" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["systems"] != float64(12) {
		t.Errorf("systems = %v", entry["systems"])
	}
}

func TestNewTextHandler(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)

	log.Debug("sampling shortfall", "requested", 50, "accepted", 48)

	out := buf.String()
	if !strings.Contains(out, "requested=50") || !strings.Contains(out, "accepted=48") {
		t.Errorf("unexpected text output: %q", out)
	}
}
