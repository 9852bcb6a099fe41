// Package observability groups structured logging, Prometheus metrics and
// OpenTelemetry tracing for the feed service.
//
// Subpackages:
//   - logging: slog setup and context propagation
//   - metrics: Prometheus collectors and Record* helpers
//   - tracing: tracer access and HTTP span middleware
//
// Example usage:
//
//	logger := logging.NewLogger("info", "json")
//	start := time.Now()
//	doc, err := feed.Render()
//	metrics.RecordFeedRender(metrics.KindLatest, len(feed.Entries()), len(doc), time.Since(start), err)
package observability
