package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns the application logger, configured from GO_ENV and
// LOG_LEVEL (debug, info, warn, error; default info). Production emits JSON
// for log aggregation, development uses the text handler. Every record
// carries a service attribute so club-site lines are attributable when the
// log sink is shared.
func NewLogger() *slog.Logger {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	opts := &slog.HandlerOptions{Level: parseLogLevel(os.Getenv("LOG_LEVEL"))}
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "clubsite")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
