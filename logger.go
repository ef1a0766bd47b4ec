package tagspace

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tagspace-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTag adds a tag name field to the logger.
func (l *Logger) WithTag(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("tag", name),
	}
}

// LogTag logs a tagging operation.
func (l *Logger) LogTag(dimensions, objects int, err error) {
	if err != nil {
		l.Error("tag failed",
			"dimensions", dimensions,
			"objects", objects,
			"error", err,
		)
	} else {
		l.Debug("tag completed",
			"dimensions", dimensions,
			"objects", objects,
		)
	}
}

// LogFind logs a query operation.
func (l *Logger) LogFind(dimensions, results int, err error) {
	if err != nil {
		l.Error("find failed",
			"dimensions", dimensions,
			"error", err,
		)
	} else {
		l.Debug("find completed",
			"dimensions", dimensions,
			"results", results,
		)
	}
}

// LogRemove logs a removal operation.
func (l *Logger) LogRemove(dimensions int, err error) {
	if err != nil {
		l.Error("remove failed",
			"dimensions", dimensions,
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"dimensions", dimensions,
		)
	}
}
