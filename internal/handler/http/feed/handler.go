// Package feed serves the Atom feeds over HTTP.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"atomfeed/internal/handler/http/pathutil"
	"atomfeed/internal/handler/http/respond"
	"atomfeed/internal/observability/logging"
	"atomfeed/internal/observability/metrics"
	"atomfeed/internal/resilience/circuitbreaker"
	feedUC "atomfeed/internal/usecase/feed"
	"atomfeed/pkg/atom"
)

// Renderer produces rendered feed documents.
type Renderer interface {
	RenderLatest(ctx context.Context, opts ...atom.RenderOption) (string, error)
	RenderSource(ctx context.Context, sourceID int64, opts ...atom.RenderOption) (string, error)
}

var (
	errRateLimited = errors.New("rate limit exceeded")
	errUnavailable = errors.New("feed temporarily unavailable")
)

// Handler serves the feed routes. A nil Limiter disables rate limiting.
type Handler struct {
	Svc     Renderer
	Limiter *rate.Limiter
	Logger  *slog.Logger
	Options []atom.RenderOption
}

// Register mounts the feed routes on mux.
func Register(mux *http.ServeMux, svc Renderer, limiter *rate.Limiter, logger *slog.Logger, opts ...atom.RenderOption) {
	h := &Handler{Svc: svc, Limiter: limiter, Logger: logger, Options: opts}
	mux.HandleFunc("GET "+feedUC.LatestPath, h.Latest)
	mux.HandleFunc("GET /sources/{id}/feed.atom", h.Source)
}

// Latest serves the aggregated feed of the newest articles across all
// active sources. 429 when rate limited, 503 when the store is unavailable.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w) {
		return
	}
	doc, err := h.Svc.RenderLatest(r.Context(), h.Options...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.Atom(w, http.StatusOK, doc)
}

// Source serves the feed of one source. 400 for a malformed id, 404 when
// the source does not exist.
func (h *Handler) Source(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, feedUC.ErrInvalidSourceID)
		return
	}
	if !h.allow(w) {
		return
	}
	doc, err := h.Svc.RenderSource(r.Context(), id, h.Options...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.Atom(w, http.StatusOK, doc)
}

func (h *Handler) allow(w http.ResponseWriter) bool {
	if h.Limiter == nil || h.Limiter.Allow() {
		return true
	}
	metrics.RecordFeedRejected("rate_limited")
	w.Header().Set("Retry-After", "1")
	respond.SafeError(w, http.StatusTooManyRequests, errRateLimited)
	return false
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, feedUC.ErrInvalidSourceID):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, feedUC.ErrSourceNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, circuitbreaker.ErrOpenState), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		metrics.RecordFeedRejected("circuit_open")
		w.Header().Set("Retry-After", "30")
		respond.SafeError(w, http.StatusServiceUnavailable, errUnavailable)
	default:
		h.logger(r).Error("feed render failed",
			slog.String("path", r.URL.Path),
			slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

func (h *Handler) logger(r *http.Request) *slog.Logger {
	if h.Logger == nil {
		return logging.FromContext(r.Context())
	}
	return logging.WithRequestID(r.Context(), h.Logger)
}
