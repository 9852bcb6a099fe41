// Package metrics provides Prometheus metrics registry and recording utilities.
//
// All collectors are registered with the Prometheus default registry through
// promauto and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "atomfeed/internal/observability/metrics"
//
//	func buildFeed() {
//	    start := time.Now()
//	    doc, err := render()
//	    metrics.RecordFeedRender(metrics.KindSource, 20, len(doc), time.Since(start), err)
//	}
package metrics
