// Package tracing provides OpenTelemetry tracing for feed builds and HTTP requests.
//
// Spans are created through the global otel TracerProvider; without an SDK
// provider installed they are no-ops.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "feed.LatestFeed")
//	defer span.End()
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "atomfeed"

// GetTracer returns the application tracer from the current global provider.
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// InstallProvider sets a global SDK tracer provider sampling the given
// fraction of root spans, plus the W3C trace-context propagator. Spans are
// not exported; the provider exists so requests get real trace IDs for log
// and X-Trace-Id correlation. Call the returned function on shutdown.
func InstallProvider(sampleRatio float64) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
