// Package logger holds the process-wide slog logger of the CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	globalLogger *slog.Logger
	debugEnabled bool
	mu           sync.RWMutex
)

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// SetGlobal sets the global logger and debug state
func SetGlobal(logger *slog.Logger, debug bool) {
	mu.Lock()
	defer mu.Unlock()

	globalLogger = logger
	debugEnabled = debug
}

// Get returns the global logger instance
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if globalLogger != nil {
		return globalLogger
	}

	// Fallback logger
	level := slog.LevelInfo
	if debugEnabled {
		level = slog.LevelDebug
	}

	return New(os.Stderr, level)
}

// IsDebug returns whether debug mode is enabled
func IsDebug() bool {
	mu.RLock()
	defer mu.RUnlock()

	return debugEnabled
}
