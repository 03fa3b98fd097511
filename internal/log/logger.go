// Package log provides structured logging configured from application
// settings.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/affiche-studio/affiche/internal/config"
)

// NewLogger creates a slog.Logger based on configuration: a coloured
// terminal handler for pretty output, a JSON handler otherwise.
func NewLogger(cfg config.AppConfig) *slog.Logger {
	return NewLoggerWithWriter(os.Stdout, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter creates a logger that writes to the given writer.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) *slog.Logger {
	lvl := parseLevel(level)

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	default:
		handler = newTerminalHandler(w, &slog.HandlerOptions{Level: lvl})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
