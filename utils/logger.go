package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured, leveled logging throughout the application.
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLogger builds a production JSON logger, or a console logger at debug
// level when debug is set.
func NewLogger(debug bool) *Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = !debug

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	return newLogger(base)
}

// NewNopLogger returns a Logger that discards everything. Used by tests.
func NewNopLogger() *Logger {
	return newLogger(zap.NewNop())
}

// WrapZap adapts an existing zap logger.
func WrapZap(base *zap.Logger) *Logger {
	return newLogger(base)
}

func newLogger(base *zap.Logger) *Logger {
	return &Logger{base: base, sugar: base.Sugar()}
}

// Zap exposes the underlying structured logger.
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

// Sync flushes any buffered entries.
func (l *Logger) Sync() {
	_ = l.base.Sync()
}

func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}
