package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

var (
	// G is a shorthand for GetLogger.
	G = GetLogger

	// L is the default logger entry used when no context logger is set.
	L = logrus.NewEntry(logrus.StandardLogger())
)

type loggerKey struct{}

// WithLogger returns a new context carrying the provided entry, so
// per-release fields attached with WithField travel with the context.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the entry stored in ctx, or the default entry.
func GetLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
		return logger
	}
	return L
}
