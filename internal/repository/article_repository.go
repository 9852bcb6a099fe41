package repository

import (
	"context"

	"atomfeed/internal/domain/entity"
)

// ArticleWithSource represents an article along with the source it came from.
type ArticleWithSource struct {
	Article *entity.Article
	Source  *entity.Source
}

type ArticleRepository interface {
	// ListBySource returns the newest articles of one source, ordered by
	// published_at DESC and capped at limit rows.
	ListBySource(ctx context.Context, sourceID int64, limit int) ([]*entity.Article, error)
	// ListRecentWithSource returns the newest articles across all active
	// sources together with their source, ordered by published_at DESC.
	ListRecentWithSource(ctx context.Context, limit int) ([]ArticleWithSource, error)
}
