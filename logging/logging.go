// Package logging builds slog loggers from a small config.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls logger behaviour.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// FromEnv fills empty fields from ORBITCALC_LOG_LEVEL and ORBITCALC_LOG_FORMAT.
func (c Config) FromEnv() Config {
	if c.Level == "" {
		c.Level = os.Getenv("ORBITCALC_LOG_LEVEL")
	}
	if c.Format == "" {
		c.Format = os.Getenv("ORBITCALC_LOG_FORMAT")
	}
	return c
}

// New returns a logger writing to w.
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to warn so the
// CLI stays quiet unless asked.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}
