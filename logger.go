package brep

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gocad/brep/kernel"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for brep and its sub-packages.
// By default, brep produces no log output. Call SetLogger to enable it.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Pass nil to disable logging (restore default silent
// behavior).
//
// Log levels used by brep:
//   - [slog.LevelDebug]: per-strategy reconstruction diagnostics
//   - [slog.LevelInfo]: lifecycle events (kernel selected)
//   - [slog.LevelWarn]: degraded results, boolean retries, fallbacks
//
// Example:
//
//	brep.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by brep. Sub-packages call this
// to share the same logger configuration without introducing import
// cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by kernels that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the current logger to a kernel if it implements
// the loggerSetter interface. Called wherever a kernel instance enters
// this package so the kernel always logs through the configured sink.
func propagateLogger(k kernel.Kernel) {
	if ls, ok := k.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
}

// DefaultKernel returns a new instance of the highest-priority registered
// kernel with the package logger attached. Configure the logger with
// SetLogger before acquiring kernels.
func DefaultKernel() (kernel.Kernel, error) {
	k, err := kernel.Default()
	if err != nil {
		return nil, err
	}
	propagateLogger(k)
	Logger().Info("brep: kernel selected", "name", k.Name())
	return k, nil
}
