package visualization

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all log records. Enabled returns false so
// callers skip formatting entirely when logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger, accessed atomically so SetLogger
// may be called while a viewer is running.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures logging for the visualization packages. The
// default is silent. Captures log at [slog.LevelDebug] (output paths,
// timings); initialization and render problems log at
// [slog.LevelWarn]. Pass nil to restore the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
