// Package tracing wires OpenTelemetry spans into the HTTP stack.
//
// Middleware opens a server span per request, continuing any W3C trace
// context the caller sent, and echoes the trace ID in the X-Trace-Id
// response header. Code that wants child spans around expensive work, such
// as a feed sync pass or an assistant call, starts them from GetTracer:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "sync.run")
//	defer span.End()
//
// Exporter selection is left to the process entry point; without a
// configured provider the spans are no-ops.
package tracing
