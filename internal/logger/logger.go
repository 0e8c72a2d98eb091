// Package logger provides structured logging for the application,
// built on zap.
package logger

import (
	"go.uber.org/zap"
)

// Logger wraps a zap.Logger. Until Init is called, Log is a no-op
// logger, so it is always safe to use.
type Logger struct {
	Log *zap.Logger
}

// New returns a Logger with a no-op backend.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the backend with a production zap logger at the given
// level ("debug", "info", "warn", "error").
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = zl
	return nil
}
