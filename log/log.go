// Package log is the leveled logger used throughout octquant. Messages are
// printf style and are forwarded to a slog.Logger, which discards everything
// until SetLogger is called.
package log

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
)

// LevelTrace sits below slog.LevelDebug. It is used for per-pass chatter.
const LevelTrace = slog.LevelDebug - 4

const calldepth = 3

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetLogger installs l as the destination for all log output. A nil logger
// restores the discarding default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Store(l)
}

// Logger returns the currently installed logger.
func Logger() *slog.Logger {
	return logger.Load()
}

func output(level slog.Level, format string, args ...any) {
	h := logger.Load().Handler()
	ctx := context.Background()
	if !h.Enabled(ctx, level) {
		return
	}
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	var pcs [1]uintptr
	runtime.Callers(calldepth, pcs[:])
	r := slog.NewRecord(time.Now(), level, message, pcs[0])
	_ = h.Handle(ctx, r)
}

func Trace(format string, args ...any) {
	output(LevelTrace, format, args...)
}

func Debug(format string, args ...any) {
	output(slog.LevelDebug, format, args...)
}

func Info(format string, args ...any) {
	output(slog.LevelInfo, format, args...)
}

func Warn(format string, args ...any) {
	output(slog.LevelWarn, format, args...)
}

func Error(format string, args ...any) {
	output(slog.LevelError, format, args...)
}
