// Package logging provides structured logging utilities.
//
// Console logs are formatted as:
// [LEVEL] [system] [HH:MM:SS] message key=value
package logging

import (
	"log/slog"
	"os"

	"github.com/villamar/pousada-recon-backend/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config. The "json" format
// is for running under a log collector; everything else gets the colored
// console handler.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = NewConsoleHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// NewLoggerWithSystem creates a logger scoped to a subsystem (e.g. "api",
// "reconcile"); the console handler renders the system name in brackets.
func NewLoggerWithSystem(cfg config.LoggingConfig, system string) *slog.Logger {
	return NewLogger(cfg).With("system", system)
}
