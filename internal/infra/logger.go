package infra

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases the zerolog.Logger so callers outside the infra package can
// depend on the logging contract without importing the third-party module
// directly.
type Logger = zerolog.Logger

// NewLogger writes to stdout.
func NewLogger(appEnv string) Logger {
	return NewLoggerTo(appEnv, os.Stdout)
}

// NewLoggerTo logs human-readable lines at debug level in development and
// JSON at info level elsewhere.
func NewLoggerTo(appEnv string, out io.Writer) Logger {
	if appEnv == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel).
			With().
			Timestamp().
			Logger()
	}
	return zerolog.New(out).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("service", "gourmet").
		Logger()
}

// WithLevel overrides the logger's level when level names one (LOG_LEVEL);
// anything else leaves it unchanged.
func WithLevel(logger Logger, level string) Logger {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return logger
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		logger.Warn().Str("log_level", level).Msg("ignoring unknown log level")
		return logger
	}
	return logger.Level(parsed)
}

// NopLogger discards everything. Providers fall back to it when no logger is configured.
func NopLogger() Logger {
	return zerolog.Nop()
}
