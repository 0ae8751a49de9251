// Package logger implements a logging adapter using log/slog with a charmbracelet/log handler.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"go.trai.ch/proper/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger  *slog.Logger
	handler *charmlog.Logger
	mu      sync.RWMutex
}

// New creates a new Logger writing to stderr.
func New() ports.Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a new Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	l := &Logger{}
	l.SetOutput(w)
	return l
}

func newHandler(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}

// SetOutput updates the logger's output destination, keeping the current level.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	level := charmlog.InfoLevel
	if l.handler != nil {
		level = l.handler.GetLevel()
	}
	l.handler = newHandler(w, level)
	l.logger = slog.New(l.handler)
}

// SetVerbose switches between debug and info output.
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if verbose {
		l.handler.SetLevel(charmlog.DebugLevel)
		return
	}
	l.handler.SetLevel(charmlog.InfoLevel)
}

// Debug logs a message only shown in verbose mode.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}
