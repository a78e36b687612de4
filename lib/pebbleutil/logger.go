// Package pebbleutil connects Pebble to the logging used by the rest of the module.
package pebbleutil

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"
)

// Logger sends Pebble's logs to a commonlog logger.
type Logger struct {
	Log commonlog.Logger
}

// NewLogger returns a Logger writing to the commonlog logger of the given name.
func NewLogger(name string) Logger {
	return Logger{Log: commonlog.GetLogger(name)}
}

// Infof implements LoggerAndTracer.
func (l Logger) Infof(format string, args ...interface{}) {
	l.Log.Debugf(format, args...)
}

// Errorf implements LoggerAndTracer.
func (l Logger) Errorf(format string, args ...interface{}) {
	l.Log.Errorf(format, args...)
}

// Fatalf implements LoggerAndTracer. Pebble expects it not to return.
func (l Logger) Fatalf(format string, args ...interface{}) {
	l.Log.Criticalf(format, args...)
	panic(fmt.Sprintf(format, args...))
}

// Eventf implements LoggerAndTracer.
func (l Logger) Eventf(ctx context.Context, format string, args ...interface{}) {
}

// IsTracingEnabled implements LoggerAndTracer.
func (l Logger) IsTracingEnabled(ctx context.Context) bool {
	return false
}
