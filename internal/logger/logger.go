// Package logger is the process-wide structured logger. Call Initialize once
// at startup; the helpers fall back to info/text until then.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	current *slog.Logger
)

// Initialize installs a stdout logger at the given level ("debug", "info",
// "warn", "error") and format ("json" or "text").
func Initialize(level, format string) {
	SetOutput(os.Stdout, level, format)
}

// SetOutput is Initialize with an explicit writer.
func SetOutput(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	}
	l := slog.New(h)

	mu.Lock()
	current = l
	mu.Unlock()
	slog.SetDefault(l)
}

// ParseLevel maps a config level name to a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Get returns the installed logger.
func Get() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l == nil {
		Initialize("info", "text")
		return Get()
	}
	return l
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, args...)
}

func with(prefix []any, args []any) []any {
	return append(prefix, args...)
}

// EnterMethod and ExitMethod trace service calls at debug level.
func EnterMethod(method string, args ...any) {
	Get().Debug("→ enter", with([]any{"method", method}, args)...)
}

func ExitMethod(method string, args ...any) {
	Get().Debug("← exit", with([]any{"method", method}, args)...)
}

func ExitMethodWithError(method string, err error, args ...any) {
	Get().Error("← exit with error", with([]any{"method", method, "error", err}, args)...)
}

// Transition records a committed lifecycle step.
func Transition(bookingID int32, from, to, event string, args ...any) {
	Get().Info("Lifecycle transition",
		with([]any{"booking_id", bookingID, "from", from, "to", to, "event", event}, args)...)
}

// Rejected records a refused lifecycle event. Collaborator failures are
// errors; validation and business rejections are warnings.
func Rejected(bookingID int32, state, event string, err error, collaborator bool) {
	args := []any{"booking_id", bookingID, "state", state, "event", event, "error", err}
	if collaborator {
		Get().Error("Lifecycle event failed", args...)
		return
	}
	Get().Warn("Lifecycle event rejected", args...)
}

// DatabaseCall and DatabaseResult bracket a query.
func DatabaseCall(operation, table string, args ...any) {
	Get().Debug("→ db", with([]any{"operation", operation, "table", table}, args)...)
}

func DatabaseResult(operation string, rows int64, err error, args ...any) {
	args = with([]any{"operation", operation, "rows", rows}, args)
	if err != nil {
		Get().Error("← db failed", append(args, "error", err)...)
		return
	}
	Get().Debug("← db", args...)
}

// ExternalServiceCall and ExternalServiceResult bracket a collaborator call.
func ExternalServiceCall(service, operation string, args ...any) {
	Get().Debug("→ external", with([]any{"service", service, "operation", operation}, args)...)
}

func ExternalServiceResult(service, operation string, err error, args ...any) {
	args = with([]any{"service", service, "operation", operation}, args)
	if err != nil {
		Get().Error("← external failed", append(args, "error", err)...)
		return
	}
	Get().Debug("← external", args...)
}
