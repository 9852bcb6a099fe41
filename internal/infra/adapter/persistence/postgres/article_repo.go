package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"atomfeed/internal/domain/entity"
	"atomfeed/internal/repository"
)

type ArticleRepo struct{ db *sql.DB }

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// scanArticle scans the article columns followed by any extra destinations.
// A NULL published_at leaves PublishedAt zero.
func scanArticle(rows *sql.Rows, extra ...any) (*entity.Article, error) {
	var article entity.Article
	var publishedAt sql.NullTime
	dest := []any{
		&article.ID, &article.SourceID, &article.Title,
		&article.URL, &article.Summary, &publishedAt, &article.CreatedAt,
	}
	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		article.PublishedAt = publishedAt.Time
	}
	return &article, nil
}

func (repo *ArticleRepo) ListBySource(ctx context.Context, sourceID int64, limit int) ([]*entity.Article, error) {
	const query = `
SELECT id, source_id, title, url, COALESCE(summary, ''), published_at, created_at
FROM articles
WHERE source_id = $1
ORDER BY COALESCE(published_at, created_at) DESC, id DESC
LIMIT $2`
	rows, err := repo.db.QueryContext(ctx, query, sourceID, limit)
	if err != nil {
		return nil, fmt.Errorf("ListBySource: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("ListBySource: Scan: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) ListRecentWithSource(ctx context.Context, limit int) ([]repository.ArticleWithSource, error) {
	const query = `
SELECT a.id, a.source_id, a.title, a.url, COALESCE(a.summary, ''), a.published_at, a.created_at,
       s.name, s.feed_url, s.last_crawled_at, s.active
FROM articles a
INNER JOIN sources s ON a.source_id = s.id
WHERE s.active = TRUE
ORDER BY COALESCE(a.published_at, a.created_at) DESC, a.id DESC
LIMIT $1`
	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecentWithSource: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// 同じソースは同一ポインタを共有する
	sources := make(map[int64]*entity.Source)
	result := make([]repository.ArticleWithSource, 0, limit)
	for rows.Next() {
		var source entity.Source
		article, err := scanArticle(rows,
			&source.Name, &source.FeedURL, &source.LastCrawledAt, &source.Active)
		if err != nil {
			return nil, fmt.Errorf("ListRecentWithSource: Scan: %w", err)
		}
		source.ID = article.SourceID
		shared, ok := sources[source.ID]
		if !ok {
			shared = &source
			sources[source.ID] = shared
		}
		result = append(result, repository.ArticleWithSource{
			Article: article,
			Source:  shared,
		})
	}
	return result, rows.Err()
}
