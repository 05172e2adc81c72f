// Package logging builds slog loggers with the configuration every process
// in this repo shares, and carries loggers and request IDs through contexts.
package logging

import (
	"context"
	"log/slog"
	"os"

	"globalpulse/internal/handler/http/requestid"
)

// levelFromEnv reads LOG_LEVEL. Anything other than "debug" means info.
func levelFromEnv() slog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		// Source locations only matter when warnings and errors surface.
		AddSource: level <= slog.LevelWarn,
	}
}

// NewLogger returns a JSON logger writing to stdout. Level comes from
// LOG_LEVEL (debug or info, defaulting to info).
func NewLogger() *slog.Logger {
	level := levelFromEnv()
	return slog.New(slog.NewJSONHandler(os.Stdout, handlerOptions(level)))
}

// NewTextLogger returns a text logger for local development.
func NewTextLogger() *slog.Logger {
	level := levelFromEnv()
	return slog.New(slog.NewTextHandler(os.Stdout, handlerOptions(level)))
}

// WithRequestID attaches the request ID from ctx to the logger, so every
// entry a handler writes can be correlated with the X-Request-ID header.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// WithFields returns a logger carrying the given key-value pairs.
func WithFields(logger *slog.Logger, fields map[string]interface{}) *slog.Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

type contextKey string

const loggerContextKey contextKey = "logger"

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default when none
// was stored.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
