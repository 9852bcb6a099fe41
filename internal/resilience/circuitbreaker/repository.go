package circuitbreaker

import (
	"context"

	"atomfeed/internal/domain/entity"
	"atomfeed/internal/repository"
)

// GuardedArticleRepository routes article reads through a circuit breaker.
type GuardedArticleRepository struct {
	next repository.ArticleRepository
	cb   *CircuitBreaker
}

// NewGuardedArticleRepository wraps next with cb.
func NewGuardedArticleRepository(next repository.ArticleRepository, cb *CircuitBreaker) *GuardedArticleRepository {
	return &GuardedArticleRepository{next: next, cb: cb}
}

func (r *GuardedArticleRepository) ListBySource(ctx context.Context, sourceID int64, limit int) ([]*entity.Article, error) {
	return Run(r.cb, func() ([]*entity.Article, error) {
		return r.next.ListBySource(ctx, sourceID, limit)
	})
}

func (r *GuardedArticleRepository) ListRecentWithSource(ctx context.Context, limit int) ([]repository.ArticleWithSource, error) {
	return Run(r.cb, func() ([]repository.ArticleWithSource, error) {
		return r.next.ListRecentWithSource(ctx, limit)
	})
}

// GuardedSourceRepository routes source reads through a circuit breaker.
type GuardedSourceRepository struct {
	next repository.SourceRepository
	cb   *CircuitBreaker
}

// NewGuardedSourceRepository wraps next with cb.
func NewGuardedSourceRepository(next repository.SourceRepository, cb *CircuitBreaker) *GuardedSourceRepository {
	return &GuardedSourceRepository{next: next, cb: cb}
}

// Get keeps the (nil, nil) not-found contract of the wrapped repository.
func (r *GuardedSourceRepository) Get(ctx context.Context, id int64) (*entity.Source, error) {
	return Run(r.cb, func() (*entity.Source, error) {
		return r.next.Get(ctx, id)
	})
}

func (r *GuardedSourceRepository) ListActive(ctx context.Context) ([]*entity.Source, error) {
	return Run(r.cb, func() ([]*entity.Source, error) {
		return r.next.ListActive(ctx)
	})
}

var (
	_ repository.ArticleRepository = (*GuardedArticleRepository)(nil)
	_ repository.SourceRepository  = (*GuardedSourceRepository)(nil)
)
