package repository

import (
	"context"

	"atomfeed/internal/domain/entity"
)

type SourceRepository interface {
	// Get returns (nil, nil) when no source has the given id.
	Get(ctx context.Context, id int64) (*entity.Source, error)
	ListActive(ctx context.Context) ([]*entity.Source, error)
}
