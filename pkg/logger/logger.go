// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns a logger carrying the operation id stored in ctx, so
// every line logged while serving one CLI command or one checkout is
// correlated:
//
//	ctx = logger.WithOperation(ctx, "checkout")
//	logger.WithCtx(ctx).Info("order placed", "order_id", order.ID)
//	// → time=... level=INFO msg="order placed" op=checkout op_id=1f0c... order_id=ORD-1717...
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/logimart/storefront/config"
)

var L *slog.Logger

func init() {
	L = New(os.Stderr)
	slog.SetDefault(L)
}

// New builds a logger writing to w. Production uses JSON lines; every
// other environment gets the human-readable text handler.
func New(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level()}

	switch config.AppEnv() {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

func level() slog.Level {
	switch config.LogLevel() {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}
	if env := config.AppEnv(); env == "production" || env == "prod" {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}

// Discard is a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type ctxKey struct{}

// WithOperation stores a logger tagged with op and a fresh op_id in ctx.
func WithOperation(ctx context.Context, op string) context.Context {
	log := WithCtx(ctx).With("op", op, "op_id", uuid.NewString())
	return context.WithValue(ctx, ctxKey{}, log)
}

// WithCtx returns the logger stored by WithOperation, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
