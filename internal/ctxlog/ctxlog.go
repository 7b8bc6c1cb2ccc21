// Package ctxlog carries a slog.Logger through context.Context so the
// compiler core can log without holding a logger field of its own.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithLogger embeds the logger in a child context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger embedded in ctx. Contexts without one
// (tests, mostly) fall back to the process-default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
