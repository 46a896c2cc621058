package logger

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// Init configures the process-wide logger. Production gets JSON output,
// everything else gets human-readable text at debug level.
func Init(env string) {
	var handler slog.Handler

	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// LoggerWrapper returns the process logger, lazily initializing a development
// logger so callers never get nil.
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
