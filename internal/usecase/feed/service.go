package feed

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"atomfeed/internal/domain/entity"
	"atomfeed/internal/observability/logging"
	"atomfeed/internal/observability/metrics"
	"atomfeed/internal/observability/tracing"
	"atomfeed/internal/repository"
	"atomfeed/pkg/atom"
)

// Service builds Atom feeds from the article and source repositories.
type Service struct {
	Articles repository.ArticleRepository
	Sources  repository.SourceRepository
	Config   Config

	// Now is used for the updated time of feeds without entries. Defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SourceFeed returns the feed of one active source with its newest articles.
// Returns ErrInvalidSourceID for non-positive ids and ErrSourceNotFound when
// the source does not exist or is inactive.
func (s *Service) SourceFeed(ctx context.Context, sourceID int64) (*atom.Feed, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "feed.SourceFeed",
		trace.WithAttributes(attribute.Int64("source_id", sourceID)))
	defer span.End()

	f, err := s.sourceFeed(ctx, sourceID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("entries", len(f.Entries())))
	return f, nil
}

func (s *Service) sourceFeed(ctx context.Context, sourceID int64) (*atom.Feed, error) {
	if sourceID <= 0 {
		return nil, ErrInvalidSourceID
	}

	src, err := s.Sources.Get(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	if src == nil || !src.Active {
		return nil, ErrSourceNotFound
	}

	articles, err := s.Articles.ListBySource(ctx, sourceID, s.Config.maxEntries())
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	f, err := s.Config.sourceHead(src, s.now())
	if err != nil {
		return nil, fmt.Errorf("build source feed: %w", err)
	}
	if s.Config.AuthorName != "" {
		// 設定された著者をソース名より優先する
		for _, a := range f.Authors() {
			f.RemoveAuthor(a)
		}
	}
	if err := s.Config.decorate(f); err != nil {
		return nil, fmt.Errorf("build source feed: %w", err)
	}

	log := logging.FromContext(ctx).With(slog.Int64("source_id", sourceID))
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		e, ok := s.entryFor(log, a, seen)
		if !ok {
			continue
		}
		if err := f.AddEntry(e); err != nil {
			return nil, fmt.Errorf("add entry: %w", err)
		}
	}

	if err := setUpdatedFromEntries(f); err != nil {
		return nil, err
	}
	return f, nil
}

// LatestFeed returns the newest articles across all active sources. Every
// entry carries a <source> element describing the source it came from.
func (s *Service) LatestFeed(ctx context.Context) (*atom.Feed, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "feed.LatestFeed")
	defer span.End()

	f, err := s.latestFeed(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("entries", len(f.Entries())))
	return f, nil
}

func (s *Service) latestFeed(ctx context.Context) (*atom.Feed, error) {
	rows, err := s.Articles.ListRecentWithSource(ctx, s.Config.maxEntries())
	if err != nil {
		return nil, fmt.Errorf("list recent articles: %w", err)
	}

	now := s.now()
	selfURL := s.Config.LatestURL()
	f, err := atom.NewFeed(URNFor(selfURL), atom.NewText(s.Config.Title), now)
	if err != nil {
		return nil, fmt.Errorf("build latest feed: %w", err)
	}
	self, err := selfLink(selfURL)
	if err != nil {
		return nil, fmt.Errorf("build latest feed: %w", err)
	}
	if err := f.AddLink(self); err != nil {
		return nil, err
	}
	if s.Config.BaseURL != "" {
		alt, err := atom.NewAlternateLink(s.Config.BaseURL + "/")
		if err != nil {
			return nil, fmt.Errorf("build latest feed: %w", err)
		}
		if err := f.AddLink(alt); err != nil {
			return nil, err
		}
	}
	if s.Config.Subtitle != "" {
		if err := f.SetSubtitle(atom.NewText(s.Config.Subtitle)); err != nil {
			return nil, err
		}
	}
	if err := s.Config.decorate(f); err != nil {
		return nil, fmt.Errorf("build latest feed: %w", err)
	}

	log := logging.FromContext(ctx)
	heads := make(map[int64]*atom.Feed)
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		e, ok := s.entryFor(log, row.Article, seen)
		if !ok {
			continue
		}
		if row.Source != nil {
			head, ok := heads[row.Source.ID]
			if !ok {
				head, err = s.Config.sourceHead(row.Source, e.Updated())
				if err != nil {
					return nil, fmt.Errorf("build source element: %w", err)
				}
				heads[row.Source.ID] = head
			}
			if err := e.SetSource(head); err != nil {
				return nil, err
			}
		}
		if err := f.AddEntry(e); err != nil {
			return nil, fmt.Errorf("add entry: %w", err)
		}
	}

	if err := setUpdatedFromEntries(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ActiveSourceIDs returns the ids of all active sources in ascending order.
func (s *Service) ActiveSourceIDs(ctx context.Context) ([]int64, error) {
	sources, err := s.Sources.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active sources: %w", err)
	}
	ids := make([]int64, 0, len(sources))
	for _, src := range sources {
		ids = append(ids, src.ID)
	}
	slices.Sort(ids)
	return ids, nil
}

// entryFor maps a, skipping invalid articles and repeated entry ids with a warning.
func (s *Service) entryFor(log *slog.Logger, a *entity.Article, seen map[string]struct{}) (*atom.Entry, bool) {
	if err := a.Validate(); err != nil {
		log.Warn("skipping article",
			slog.Int64("article_id", a.ID),
			slog.String("reason", "invalid"),
			slog.Any("error", err))
		metrics.RecordArticleSkipped("invalid")
		return nil, false
	}

	e, err := newEntry(a)
	if err != nil {
		log.Warn("skipping article",
			slog.Int64("article_id", a.ID),
			slog.String("reason", "mapping"),
			slog.Any("error", err))
		metrics.RecordArticleSkipped("mapping")
		return nil, false
	}

	if _, dup := seen[e.ID()]; dup {
		log.Debug("skipping duplicate article",
			slog.Int64("article_id", a.ID),
			slog.String("url", a.URL))
		metrics.RecordArticleSkipped("duplicate")
		return nil, false
	}
	seen[e.ID()] = struct{}{}
	return e, true
}

// setUpdatedFromEntries moves f's updated time to its newest entry, if any.
func setUpdatedFromEntries(f *atom.Feed) error {
	var newest time.Time
	for _, e := range f.Entries() {
		if e.Updated().After(newest) {
			newest = e.Updated()
		}
	}
	if newest.IsZero() {
		return nil
	}
	return f.SetUpdated(newest)
}

// RenderSource builds and renders the feed of one source.
func (s *Service) RenderSource(ctx context.Context, sourceID int64, opts ...atom.RenderOption) (string, error) {
	return s.render(ctx, metrics.KindSource, func(ctx context.Context) (*atom.Feed, error) {
		return s.SourceFeed(ctx, sourceID)
	}, opts)
}

// RenderLatest builds and renders the aggregated feed.
func (s *Service) RenderLatest(ctx context.Context, opts ...atom.RenderOption) (string, error) {
	return s.render(ctx, metrics.KindLatest, s.LatestFeed, opts)
}

func (s *Service) render(ctx context.Context, kind string, build func(context.Context) (*atom.Feed, error), opts []atom.RenderOption) (string, error) {
	start := time.Now()

	f, err := build(ctx)
	if err != nil {
		metrics.RecordFeedRender(kind, 0, 0, time.Since(start), err)
		return "", err
	}

	doc, err := f.RenderWith(opts...)
	if err != nil {
		err = fmt.Errorf("render %s feed: %w", kind, err)
	}
	metrics.RecordFeedRender(kind, len(f.Entries()), len(doc), time.Since(start), err)
	if err != nil {
		return "", err
	}

	logging.FromContext(ctx).Debug("feed rendered",
		slog.String("kind", kind),
		slog.Int("entries", len(f.Entries())),
		slog.Int("bytes", len(doc)),
		slog.Duration("duration", time.Since(start)))
	return doc, nil
}
