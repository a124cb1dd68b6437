// Package logger provides structured logging for the coordinator.
// All state transitions of the room should be traceable through this.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with the small surface the rest of the server uses.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a production logger writing to stdout/stderr.
func NewLogger() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z := zap.Must(cfg.Build(zap.AddCallerSkip(1)))
	return &Logger{sugar: z.Sugar()}
}

// NewNop returns a logger that discards everything. For tests.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Info logs informational messages.
func (l *Logger) Info(msg string, kv ...interface{}) {
	l.sugar.Infow(msg, kv...)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string, kv ...interface{}) {
	l.sugar.Warnw(msg, kv...)
}

// Error logs error messages.
func (l *Logger) Error(msg string, kv ...interface{}) {
	l.sugar.Errorw(msg, kv...)
}

// Event logs a specific game action for traceability.
func (l *Logger) Event(eventType string, actor string, details string) {
	l.sugar.Infow("game event", "type", eventType, "actor", actor, "details", details)
}

// Sync flushes buffered entries. Call on shutdown.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}
