package logger

import "github.com/user/pixelworker/pkg/ports"

// NoopLogger discards everything. The CLI uses it for --quiet and tests use
// it wherever log output is irrelevant.
type NoopLogger struct{}

// NewNoop creates a new no-op logger.
func NewNoop() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, args ...interface{}) {}
func (l *NoopLogger) Info(msg string, args ...interface{})  {}
func (l *NoopLogger) Warn(msg string, args ...interface{})  {}
func (l *NoopLogger) Error(msg string, args ...interface{}) {}

// WithComponent returns l.
func (l *NoopLogger) WithComponent(component string) ports.Logger { return l }

// WithJob returns l.
func (l *NoopLogger) WithJob(id uint64) ports.Logger { return l }

var _ ports.Logger = (*NoopLogger)(nil)
