package kdknn

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with the field names used across kdknn.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler logs text
// to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON records to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// WithK adds a k (neighbor count) field.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// WithDimension adds a dimension field.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{Logger: l.Logger.With("dimension", dim)}
}

// LogBuild logs the outcome of a tree build.
func (l *Logger) LogBuild(ctx context.Context, points, nodes, depth int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "tree build failed",
			"points", points,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "tree build completed",
		"points", points,
		"nodes", nodes,
		"depth", depth,
		"elapsed", elapsed,
	)
}

// LogBatch logs the outcome of a batch of queries.
func (l *Logger) LogBatch(ctx context.Context, queries int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query batch failed",
			"queries", queries,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "query batch completed",
		"queries", queries,
		"elapsed", elapsed,
	)
}
