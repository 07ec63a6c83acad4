// Package logging defines a minimal structured-logging interface used across
// the project, with slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "ticket sold", "ticket_id", id, "participant", p)
type Logger interface {
	// Debug logs diagnostic details that are off by default.
	Debug(ctx context.Context, msg string, args ...any)
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)
	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)
	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Formats accepted by New.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatZap  = "zap"
)

// New builds a Logger writing to w in the given format at the given level
// ("debug", "info", "warn", "error").
func New(w io.Writer, format, level string) (Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case FormatJSON, "":
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts))), nil
	case FormatText:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, opts))), nil
	case FormatZap:
		return NewZapLogger(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func parseLevel(level string) (slog.Level, error) {
	if level == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}
