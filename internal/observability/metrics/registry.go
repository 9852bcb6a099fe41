package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed kinds used as the "kind" label.
const (
	KindLatest     = "latest"
	KindSource     = "source"
	KindDefinition = "definition"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks the number of requests being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// FeedRequestsRejectedTotal counts feed requests turned away before rendering
	FeedRequestsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_rejected_total",
			Help: "Feed requests rejected by reason",
		},
		[]string{"reason"},
	)
)

// Feed metrics track Atom document production
var (
	// FeedRendersTotal counts feed builds by kind and outcome
	FeedRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_renders_total",
			Help: "Total number of Atom feed renders",
		},
		[]string{"kind", "status"},
	)

	// FeedRenderDuration measures the time to build and serialise a feed
	FeedRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_render_duration_seconds",
			Help:    "Time taken to build and render an Atom feed",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"kind"},
	)

	// FeedEntries observes the number of entries per rendered feed
	FeedEntries = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_entries",
			Help:    "Number of entries in a rendered Atom feed",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 200, 500},
		},
		[]string{"kind"},
	)

	// FeedBytes observes rendered document size
	FeedBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_document_bytes",
			Help:    "Size of rendered Atom documents in bytes",
			Buckets: prometheus.ExponentialBuckets(512, 4, 8),
		},
		[]string{"kind"},
	)

	// ArticlesSkippedTotal counts stored articles that could not become entries
	ArticlesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_articles_skipped_total",
			Help: "Articles skipped while building feeds",
		},
		[]string{"reason"},
	)

	// FeedExportsTotal counts feed file exports by outcome
	FeedExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_exports_total",
			Help: "Total number of feed file exports",
		},
		[]string{"status"},
	)
)
