// Package logger builds the session's slog logger. Output goes to a rotated
// file because the terminal belongs to the game view.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nathoo/epicquest/config"
)

// Setup returns a logger for cfg and a function that closes its file.
// Disabled logging yields a logger that drops everything.
func Setup(cfg config.LoggingConfig) (*slog.Logger, func() error) {
	if !cfg.Enabled {
		return slog.New(slog.DiscardHandler), func() error { return nil }
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return New(file, cfg.Format, cfg.Level), file.Close
}

// New builds a logger writing to w in the given format ("json" or text).
func New(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel converts a level name to slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
