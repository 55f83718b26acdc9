package observability

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/winds-aloft-etl/internal/config"
	"github.com/lmittmann/tint"
)

const serviceName = "winds-aloft-etl"

// NewLogger builds the service logger writing to stdout and installs it as
// the slog default. LOG_FORMAT=text selects a colourised human-readable
// handler; anything else emits JSON.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := NewWriterLogger(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger
}

// NewWriterLogger builds a logger for w without touching the slog default.
func NewWriterLogger(w io.Writer, format, level string) *slog.Logger {
	lvl := parseLevel(level)

	var h slog.Handler
	if format == "text" {
		h = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(h).With("service", serviceName)
}

// parseLevel falls back to info for unrecognised names.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
