package category

import (
	"context"

	"offerboard/internal/domain"
)

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]domain.Category, int, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}
