package metrics

import (
	"strconv"
	"time"
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordFeedRender records one feed build. Size and entry count are only
// observed for successful renders.
func RecordFeedRender(kind string, entries, bytes int, duration time.Duration, err error) {
	FeedRendersTotal.WithLabelValues(kind, status(err)).Inc()
	FeedRenderDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err != nil {
		return
	}
	FeedEntries.WithLabelValues(kind).Observe(float64(entries))
	FeedBytes.WithLabelValues(kind).Observe(float64(bytes))
}

// RecordArticleSkipped counts an article left out of a feed.
func RecordArticleSkipped(reason string) {
	ArticlesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordFeedRejected counts a feed request rejected before rendering,
// e.g. "rate_limited" or "circuit_open".
func RecordFeedRejected(reason string) {
	FeedRequestsRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordFeedExport counts one export run.
func RecordFeedExport(err error) {
	FeedExportsTotal.WithLabelValues(status(err)).Inc()
}

// RecordHTTPRequest records the outcome of one HTTP request.
func RecordHTTPRequest(method, path string, code int, size int, duration time.Duration) {
	statusCode := strconv.Itoa(code)
	HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(size))
}
