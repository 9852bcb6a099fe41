package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"atomfeed/internal/handler/http/pathutil"
	"atomfeed/internal/handler/http/responsewriter"
	"atomfeed/internal/observability/metrics"
)

// MetricsMiddleware records request count, latency, in-flight requests and
// response size. Paths are normalised to route templates.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()
		wrapped := responsewriter.Wrap(w)
		next.ServeHTTP(wrapped, r)

		metrics.RecordHTTPRequest(
			r.Method,
			pathutil.NormalizePath(r.URL.Path),
			wrapped.StatusCode(),
			wrapped.BytesWritten(),
			time.Since(start),
		)
	})
}

// MetricsHandler exposes the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
