// Package logging configures structured logging for log/slog.
//
// Text output is colored with tint; JSON output uses the standard slog JSON
// handler for machine consumption.
//
// Usage:
//
//	logging.Setup(logging.Options{Level: "debug", Format: "text"})
//	logging.Setup(logging.Options{})  // INFO text, or LOG_LEVEL from env
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (used when Options.Level is empty)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options selects the handler and minimum level.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is "text" (colored, default) or "json".
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// Setup installs a logger built from opts as the slog default and returns it.
func Setup(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger from opts without touching the default.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	levelName := opts.Level
	if levelName == "" {
		levelName = os.Getenv("LOG_LEVEL")
	}
	level := ParseLevel(levelName)

	if strings.EqualFold(opts.Format, "json") {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}
	return slog.New(tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
