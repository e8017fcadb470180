package enterprise

import (
	"context"

	"offerboard/internal/domain"
)

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]domain.Enterprise, int, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Enterprise, error)
	GetByName(ctx context.Context, name string) (*domain.Enterprise, error)
	Upsert(ctx context.Context, e domain.Enterprise) (*domain.Enterprise, error)
}
