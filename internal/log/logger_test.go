package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/affiche-studio/affiche/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Info("entity resolved", "kind", "artist", "id", 42)

	out := buf.String()
	if !strings.Contains(out, `"msg":"entity resolved"`) {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, `"kind":"artist"`) {
		t.Errorf("output = %q", out)
	}
}

func TestNewLoggerWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record passed a WARN filter")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn record missing")
	}
}

func TestTerminalHandler_Output(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "DEBUG")

	logger.Debug("alias fallback merged", "entity_id", 7, "alias", "Imp. Chaix")

	out := buf.String()
	if !strings.Contains(out, "DBG") {
		t.Errorf("output = %q, missing level label", out)
	}
	if !strings.Contains(out, "alias fallback merged") {
		t.Errorf("output = %q, missing message", out)
	}
	if !strings.Contains(out, `alias=`) {
		t.Errorf("output = %q, missing attr key", out)
	}
	if !strings.Contains(out, `"Imp. Chaix"`) {
		t.Errorf("output = %q, spaced value should be quoted", out)
	}
}

func TestTerminalHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.WithGroup("link").Info("applied", "field", "artist")

	if !strings.Contains(buf.String(), "link.field=") {
		t.Errorf("output = %q, group prefix missing", buf.String())
	}
}
