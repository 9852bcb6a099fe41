package feed_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	feedHandler "atomfeed/internal/handler/http/feed"
	"atomfeed/internal/observability/metrics"
	"atomfeed/internal/resilience/circuitbreaker"
	feedUC "atomfeed/internal/usecase/feed"
	"atomfeed/pkg/atom"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + `<feed xmlns="http://www.w3.org/2005/Atom"></feed>` + "\n"

/*────────────────────  スタブ  ────────────────────*/

type stubRenderer struct {
	err      error
	sourceID int64
	opts     int
}

func (s *stubRenderer) RenderLatest(_ context.Context, opts ...atom.RenderOption) (string, error) {
	s.opts = len(opts)
	if s.err != nil {
		return "", s.err
	}
	return doc, nil
}

func (s *stubRenderer) RenderSource(_ context.Context, id int64, opts ...atom.RenderOption) (string, error) {
	s.sourceID = id
	s.opts = len(opts)
	if s.err != nil {
		return "", s.err
	}
	return doc, nil
}

func newMux(svc feedHandler.Renderer, limiter *rate.Limiter) *http.ServeMux {
	mux := http.NewServeMux()
	feedHandler.Register(mux, svc, limiter, nil, atom.Compact())
	return mux
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

/*────────────────────  テストケース  ────────────────────*/

func TestLatest(t *testing.T) {
	svc := &stubRenderer{}
	rr := httptest.NewRecorder()
	newMux(svc, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feeds/latest.atom", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/atom+xml; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, doc, rr.Body.String())
	assert.Equal(t, 1, svc.opts, "render options are passed through")
}

func TestSource(t *testing.T) {
	svc := &stubRenderer{}
	rr := httptest.NewRecorder()
	newMux(svc, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sources/42/feed.atom", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(42), svc.sourceID)
	assert.Equal(t, doc, rr.Body.String())
}

func TestSource_BadID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-1", "1.5"} {
		t.Run(id, func(t *testing.T) {
			svc := &stubRenderer{}
			rr := httptest.NewRecorder()
			newMux(svc, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sources/"+id+"/feed.atom", nil))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "invalid source ID", errorBody(t, rr))
			assert.Zero(t, svc.sourceID, "service is not called")
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	newMux(&stubRenderer{}, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/feeds/latest.atom", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "unknown source", err: feedUC.ErrSourceNotFound, wantStatus: http.StatusNotFound, wantMsg: "source not found"},
		{name: "wrapped invalid id", err: fmt.Errorf("build: %w", feedUC.ErrInvalidSourceID), wantStatus: http.StatusBadRequest, wantMsg: "build: invalid source ID"},
		{name: "breaker open", err: fmt.Errorf("list articles: %w", circuitbreaker.ErrOpenState), wantStatus: http.StatusServiceUnavailable, wantMsg: "service temporarily unavailable"},
		{name: "breaker half-open saturation", err: circuitbreaker.ErrTooManyRequests, wantStatus: http.StatusServiceUnavailable, wantMsg: "service temporarily unavailable"},
		{name: "database failure", err: errors.New("dial tcp postgres://u:secret@db: connection refused"), wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			newMux(&stubRenderer{err: tt.err}, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sources/7/feed.atom", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, errorBody(t, rr))
		})
	}
}

func TestErrorMapping_BreakerOpenSetsRetryAfter(t *testing.T) {
	rejected := metrics.FeedRequestsRejectedTotal.WithLabelValues("circuit_open")
	before := testutil.ToFloat64(rejected)

	rr := httptest.NewRecorder()
	newMux(&stubRenderer{err: circuitbreaker.ErrOpenState}, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feeds/latest.atom", nil))

	assert.Equal(t, "30", rr.Header().Get("Retry-After"))
	assert.Equal(t, before+1, testutil.ToFloat64(rejected))
}

func TestRateLimit(t *testing.T) {
	rejected := metrics.FeedRequestsRejectedTotal.WithLabelValues("rate_limited")
	before := testutil.ToFloat64(rejected)

	// refill なし、バースト 1
	mux := newMux(&stubRenderer{}, rate.NewLimiter(0, 1))

	first := httptest.NewRecorder()
	mux.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/feeds/latest.atom", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	mux.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/sources/1/feed.atom", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Equal(t, "rate limit exceeded", errorBody(t, second))

	assert.Equal(t, before+1, testutil.ToFloat64(rejected))
}
