package feed_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	gatom "github.com/mmcdole/gofeed/atom"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"atomfeed/internal/domain/entity"
	"atomfeed/internal/observability/metrics"
	"atomfeed/internal/repository"
	"atomfeed/internal/usecase/feed"
	"atomfeed/pkg/atom"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

type stubArticles struct {
	bySource map[int64][]*entity.Article
	recent   []repository.ArticleWithSource
	err      error

	lastLimit int
}

func (s *stubArticles) ListBySource(_ context.Context, sourceID int64, limit int) ([]*entity.Article, error) {
	s.lastLimit = limit
	return s.bySource[sourceID], s.err
}

func (s *stubArticles) ListRecentWithSource(_ context.Context, limit int) ([]repository.ArticleWithSource, error) {
	s.lastLimit = limit
	return s.recent, s.err
}

type stubSources struct {
	data map[int64]*entity.Source
	err  error
}

func (s *stubSources) Get(_ context.Context, id int64) (*entity.Source, error) {
	return s.data[id], s.err
}

func (s *stubSources) ListActive(_ context.Context) ([]*entity.Source, error) {
	var out []*entity.Source
	for _, v := range s.data {
		if v.Active {
			out = append(out, v)
		}
	}
	return out, s.err
}

/*────────────────────  フィクスチャ  ────────────────────*/

var (
	baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	nowTime  = time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
)

func crawled(t time.Time) *time.Time { return &t }

func fixtures() (*stubArticles, *stubSources) {
	goBlog := &entity.Source{ID: 1, Name: "Go Blog", FeedURL: "https://go.dev/blog/feed.atom", Active: true, LastCrawledAt: crawled(baseTime)}
	rustBlog := &entity.Source{ID: 2, Name: "Rust Blog", FeedURL: "https://blog.rust-lang.org/feed.xml", Active: true}
	retired := &entity.Source{ID: 3, Name: "Retired", FeedURL: "https://old.example.com/rss", Active: false}

	a1 := &entity.Article{ID: 10, SourceID: 1, Title: "Go 1.22", URL: "https://go.dev/blog/go1.22", Summary: "Release notes", PublishedAt: baseTime.Add(2 * time.Hour)}
	a2 := &entity.Article{ID: 11, SourceID: 1, Title: "Range funcs", URL: "https://go.dev/blog/range-functions", Summary: "<p>Iterators</p>", CreatedAt: baseTime.Add(time.Hour)}
	a3 := &entity.Article{ID: 20, SourceID: 2, Title: "Rust 1.76", URL: "https://blog.rust-lang.org/2024/02/08/Rust-1.76.0.html", PublishedAt: baseTime.Add(90 * time.Minute)}

	articles := &stubArticles{
		bySource: map[int64][]*entity.Article{1: {a1, a2}},
		recent: []repository.ArticleWithSource{
			{Article: a1, Source: goBlog},
			{Article: a3, Source: rustBlog},
			{Article: a2, Source: goBlog},
		},
	}
	sources := &stubSources{data: map[int64]*entity.Source{1: goBlog, 2: rustBlog, 3: retired}}
	return articles, sources
}

func newService(articles *stubArticles, sources *stubSources, cfg feed.Config) *feed.Service {
	return &feed.Service{
		Articles: articles,
		Sources:  sources,
		Config:   cfg,
		Now:      func() time.Time { return nowTime },
	}
}

func baseConfig() feed.Config {
	return feed.Config{
		BaseURL:          "https://feeds.example.com",
		Title:            "Latest articles",
		Subtitle:         "Everything we crawled",
		Rights:           "CC BY 4.0",
		GeneratorName:    "atomfeed",
		GeneratorVersion: "1.0.0",
		MaxEntries:       20,
	}
}

func linkByRel(t *testing.T, links []*atom.Link, rel string) *atom.Link {
	t.Helper()
	for _, l := range links {
		if r, err := l.Rel(); err == nil && r == rel {
			return l
		}
	}
	t.Fatalf("no link with rel %q", rel)
	return nil
}

/*────────────────────  SourceFeed  ────────────────────*/

func TestSourceFeed(t *testing.T) {
	articles, sources := fixtures()
	svc := newService(articles, sources, baseConfig())

	f, err := svc.SourceFeed(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, feed.URNFor("https://feeds.example.com/sources/1/feed.atom"), f.ID())
	assert.Equal(t, "Go Blog", f.Title().Text())
	assert.True(t, f.Updated().Equal(baseTime.Add(2*time.Hour)), "updated follows the newest entry")
	assert.Equal(t, 20, articles.lastLimit)

	self := linkByRel(t, f.Links(), atom.RelSelf)
	assert.Equal(t, "https://feeds.example.com/sources/1/feed.atom", self.Href())
	via := linkByRel(t, f.Links(), atom.RelVia)
	assert.Equal(t, "https://go.dev/blog/feed.atom", via.Href())

	require.Len(t, f.Authors(), 1)
	assert.Equal(t, "Go Blog", f.Authors()[0].Name())

	rights, err := f.Rights()
	require.NoError(t, err)
	assert.Equal(t, "CC BY 4.0", rights.Text())
	gen, err := f.Generator()
	require.NoError(t, err)
	assert.Equal(t, "atomfeed", gen.Name())

	entries := f.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, feed.URNFor("https://go.dev/blog/go1.22"), entries[0].ID())
	assert.Equal(t, "Go 1.22", entries[0].Title().Text())

	summary, err := entries[1].Summary()
	require.NoError(t, err)
	assert.Equal(t, atom.TextHTML, summary.Type())
	published, err := entries[1].Published()
	require.NoError(t, err)
	assert.True(t, published.Equal(baseTime.Add(time.Hour)), "falls back to created_at")

	content, err := entries[0].Content()
	require.NoError(t, err)
	ool, ok := content.(*atom.OutOfLineContent)
	require.True(t, ok)
	assert.Equal(t, "https://go.dev/blog/go1.22", ool.Src())
	assert.False(t, entries[0].HasSource())
}

func TestSourceFeed_ConfiguredAuthorWins(t *testing.T) {
	articles, sources := fixtures()
	cfg := baseConfig()
	cfg.AuthorName = "Feed Team"
	cfg.AuthorEmail = "feeds@example.com"
	svc := newService(articles, sources, cfg)

	f, err := svc.SourceFeed(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, f.Authors(), 1)
	assert.Equal(t, "Feed Team", f.Authors()[0].Name())
	email, err := f.Authors()[0].Email()
	require.NoError(t, err)
	assert.Equal(t, "feeds@example.com", email)
}

func TestSourceFeed_Empty(t *testing.T) {
	articles, sources := fixtures()
	svc := newService(articles, sources, baseConfig())

	f, err := svc.SourceFeed(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, f.Entries())
	assert.True(t, f.Updated().Equal(nowTime), "never crawled source falls back to now")

	articles.bySource[1] = nil
	f, err = svc.SourceFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, f.Updated().Equal(baseTime), "uses last crawl time")
}

func TestSourceFeed_Errors(t *testing.T) {
	dbErr := errors.New("connection reset")

	tests := []struct {
		name    string
		id      int64
		setup   func(*stubArticles, *stubSources)
		wantErr error
	}{
		{name: "zero id", id: 0, wantErr: feed.ErrInvalidSourceID},
		{name: "negative id", id: -4, wantErr: feed.ErrInvalidSourceID},
		{name: "missing source", id: 99, wantErr: feed.ErrSourceNotFound},
		{name: "inactive source", id: 3, wantErr: feed.ErrSourceNotFound},
		{
			name:    "source lookup fails",
			id:      1,
			setup:   func(_ *stubArticles, s *stubSources) { s.err = dbErr },
			wantErr: dbErr,
		},
		{
			name:    "article listing fails",
			id:      1,
			setup:   func(a *stubArticles, _ *stubSources) { a.err = dbErr },
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles, sources := fixtures()
			if tt.setup != nil {
				tt.setup(articles, sources)
			}
			svc := newService(articles, sources, baseConfig())

			f, err := svc.SourceFeed(context.Background(), tt.id)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSourceFeed_SkipsInvalidAndDuplicateArticles(t *testing.T) {
	articles, sources := fixtures()
	good := articles.bySource[1][0]
	articles.bySource[1] = []*entity.Article{
		good,
		{ID: 12, SourceID: 1, Title: "  ", URL: "https://go.dev/blog/blank", PublishedAt: baseTime},
		{ID: 13, SourceID: 1, Title: "Bad URL", URL: "ftp://go.dev/file", PublishedAt: baseTime},
		{ID: 14, SourceID: 1, Title: "Same page again", URL: good.URL, PublishedAt: baseTime},
	}
	svc := newService(articles, sources, baseConfig())

	invalid := metrics.ArticlesSkippedTotal.WithLabelValues("invalid")
	duplicate := metrics.ArticlesSkippedTotal.WithLabelValues("duplicate")
	invalidBefore := testutil.ToFloat64(invalid)
	duplicateBefore := testutil.ToFloat64(duplicate)

	f, err := svc.SourceFeed(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, f.Entries(), 1)
	assert.Equal(t, "Go 1.22", f.Entries()[0].Title().Text())

	assert.Equal(t, invalidBefore+2, testutil.ToFloat64(invalid))
	assert.Equal(t, duplicateBefore+1, testutil.ToFloat64(duplicate))
}

/*────────────────────  LatestFeed  ────────────────────*/

func TestLatestFeed(t *testing.T) {
	articles, sources := fixtures()
	svc := newService(articles, sources, baseConfig())

	f, err := svc.LatestFeed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, feed.URNFor("https://feeds.example.com/feeds/latest.atom"), f.ID())
	assert.Equal(t, "Latest articles", f.Title().Text())
	subtitle, err := f.Subtitle()
	require.NoError(t, err)
	assert.Equal(t, "Everything we crawled", subtitle.Text())
	assert.True(t, f.Updated().Equal(baseTime.Add(2*time.Hour)))

	assert.Equal(t, "https://feeds.example.com/feeds/latest.atom", linkByRel(t, f.Links(), atom.RelSelf).Href())
	assert.Equal(t, "https://feeds.example.com/", linkByRel(t, f.Links(), atom.RelAlternate).Href())

	entries := f.Entries()
	require.Len(t, entries, 3)

	var titles []string
	for _, e := range entries {
		titles = append(titles, e.Title().Text())
	}
	assert.Equal(t, []string{"Go 1.22", "Rust 1.76", "Range funcs"}, titles)

	first, err := entries[0].Source()
	require.NoError(t, err)
	second, err := entries[1].Source()
	require.NoError(t, err)
	third, err := entries[2].Source()
	require.NoError(t, err)

	assert.Same(t, first, third, "entries from one source share the source element")
	assert.NotSame(t, first, second)
	assert.Equal(t, "Go Blog", first.Title().Text())
	assert.True(t, first.Updated().Equal(baseTime))
	assert.Equal(t, "Rust Blog", second.Title().Text())
	assert.True(t, second.Updated().Equal(baseTime.Add(90*time.Minute)), "uncrawled source uses its entry time")
	assert.Equal(t, "https://blog.rust-lang.org/feed.xml", linkByRel(t, second.Links(), atom.RelVia).Href())
}

func TestLatestFeed_Empty(t *testing.T) {
	svc := newService(&stubArticles{}, &stubSources{}, baseConfig())

	f, err := svc.LatestFeed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.Entries())
	assert.True(t, f.Updated().Equal(nowTime))
}

func TestLatestFeed_RepositoryError(t *testing.T) {
	articles, sources := fixtures()
	articles.err = errors.New("timeout")
	svc := newService(articles, sources, baseConfig())

	_, err := svc.LatestFeed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list recent articles")
}

func TestLatestFeed_DefaultLimit(t *testing.T) {
	articles, sources := fixtures()
	cfg := baseConfig()
	cfg.MaxEntries = 0
	svc := newService(articles, sources, cfg)

	_, err := svc.LatestFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, feed.DefaultMaxEntries, articles.lastLimit)
}

/*────────────────────  Render  ────────────────────*/

func installRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return exporter
}

func TestRenderLatest_ParsesAsAtom(t *testing.T) {
	exporter := installRecorder(t)
	articles, sources := fixtures()
	svc := newService(articles, sources, baseConfig())

	rendered := metrics.FeedRendersTotal.WithLabelValues(metrics.KindLatest, "success")
	before := testutil.ToFloat64(rendered)

	doc, err := svc.RenderLatest(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))

	parsed, err := (&gatom.Parser{}).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Latest articles", parsed.Title)
	require.Len(t, parsed.Entries, 3)
	assert.Equal(t, "Go 1.22", parsed.Entries[0].Title)
	assert.Equal(t, "Release notes", parsed.Entries[0].Summary)
	require.NotNil(t, parsed.Entries[0].Source)
	assert.Equal(t, "Go Blog", parsed.Entries[0].Source.Title)
	require.NotNil(t, parsed.Generator)
	assert.Equal(t, "atomfeed", parsed.Generator.Value)

	assert.Equal(t, before+1, testutil.ToFloat64(rendered))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "feed.LatestFeed", spans[0].Name)
}

func TestRenderSource_Compact(t *testing.T) {
	articles, sources := fixtures()
	svc := newService(articles, sources, baseConfig())

	doc, err := svc.RenderSource(context.Background(), 1, atom.Compact())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(strings.TrimSuffix(doc, "\n"), "\n"), "declaration line plus one document line")
}

func TestRenderSource_RecordsFailure(t *testing.T) {
	exporter := installRecorder(t)
	articles, sources := fixtures()
	svc := newService(articles, sources, baseConfig())

	failed := metrics.FeedRendersTotal.WithLabelValues(metrics.KindSource, "error")
	before := testutil.ToFloat64(failed)

	doc, err := svc.RenderSource(context.Background(), 3)
	assert.ErrorIs(t, err, feed.ErrSourceNotFound)
	assert.Empty(t, doc)
	assert.Equal(t, before+1, testutil.ToFloat64(failed))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestActiveSourceIDs(t *testing.T) {
	articles, sources := fixtures()
	svc := newService(articles, sources, baseConfig())

	ids, err := svc.ActiveSourceIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)

	sources.err = errors.New("connection reset")
	_, err = svc.ActiveSourceIDs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list active sources")
}
