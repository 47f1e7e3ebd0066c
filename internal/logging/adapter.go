package logging

import (
	"log/slog"
)

// Logger is the minimal logging interface accepted by packages that
// should not depend on slog directly, such as the Fathom API client.
// Arguments are alternating key-value pairs, slog style.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// SlogAdapter satisfies Logger on top of an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps the given slog.Logger. A nil logger falls back
// to slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (a *SlogAdapter) Debug(msg string, args ...interface{}) {
	a.logger.Debug(msg, args...)
}

func (a *SlogAdapter) Info(msg string, args ...interface{}) {
	a.logger.Info(msg, args...)
}

func (a *SlogAdapter) Warn(msg string, args ...interface{}) {
	a.logger.Warn(msg, args...)
}

func (a *SlogAdapter) Error(msg string, args ...interface{}) {
	a.logger.Error(msg, args...)
}

// Logger returns the underlying slog.Logger for direct access when needed.
func (a *SlogAdapter) Logger() *slog.Logger {
	return a.logger
}

// ComponentLogger returns a Logger whose records carry a component
// attribute, so log lines from shared packages can be told apart.
//
//	client, _ := fathom.NewClient(key, fathom.WithLogger(logging.ComponentLogger("fathom")))
func ComponentLogger(name string) *SlogAdapter {
	return NewSlogAdapter(slog.Default().With(slog.String(KeyComponent, name)))
}

// DefaultLogger returns a Logger using the default slog.Logger.
func DefaultLogger() *SlogAdapter {
	return NewSlogAdapter(slog.Default())
}
