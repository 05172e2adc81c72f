// Package observability groups the cross-cutting instrumentation for the
// news backend: slog-based structured logging under logging, Prometheus
// collectors for the HTTP layer and the sync worker, and OpenTelemetry
// request tracing under tracing.
//
// Handlers compose the pieces per request:
//
//	logger := logging.WithRequestID(ctx, baseLogger)
//	logger.Info("articles listed", "count", len(articles))
//
// Metrics registration happens once at process start; the worker and the
// API server each register only the collectors they emit.
package observability
