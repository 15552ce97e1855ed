package tinystore

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tinystore-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses the default text handler to stderr.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogCreate logs a create operation.
func (l *Logger) LogCreate(label string, err error) {
	if err != nil {
		l.Error("create failed", "store", label, "error", err)
	} else {
		l.Debug("create completed", "store", label)
	}
}

// LogDestroy logs a destroy operation.
func (l *Logger) LogDestroy(label string, err error) {
	if err != nil {
		l.Error("destroy failed", "store", label, "error", err)
	} else {
		l.Debug("destroy completed", "store", label)
	}
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(label string, err error) {
	if err != nil {
		l.Error("update failed", "store", label, "error", err)
	} else {
		l.Debug("update completed", "store", label)
	}
}

// LogSnapshot logs a dump operation.
func (l *Logger) LogSnapshot(label, filename string, items int, err error) {
	if err != nil {
		l.Error("snapshot failed", "store", label, "filename", filename, "error", err)
	} else {
		l.Info("snapshot saved", "store", label, "filename", filename, "items", items)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(filename string, items int, err error) {
	if err != nil {
		l.Error("load failed", "filename", filename, "error", err)
	} else {
		l.Info("load completed", "filename", filename, "items", items)
	}
}
