// Package logging builds the slog loggers used by the command-line tools.
//
// Output always goes to stderr-like writers: stdout carries palette output
// or MCP frames and must stay clean.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "PALETTE_LOG_LEVEL"

// ParseLevel maps "debug", "info", "warn" and "error" (any case) to a slog
// level. Anything else yields slog.LevelWarn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a tint-backed logger writing to w at the given level. Colors
// are enabled only when w is a terminal.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !IsTerminal(w),
	}))
}

// FromEnv is New with the level read from EnvLevel.
func FromEnv(w io.Writer) *slog.Logger {
	return New(w, ParseLevel(os.Getenv(EnvLevel)))
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
