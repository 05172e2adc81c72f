package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer names every span produced by this service.
var tracer = otel.Tracer("globalpulse")

// GetTracer exposes the service tracer for manual child spans.
func GetTracer() trace.Tracer {
	return tracer
}
