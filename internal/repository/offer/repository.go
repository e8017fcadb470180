package offer

import (
	"context"

	"offerboard/internal/domain"
)

// FilterQuery is the resolved form of domain.OfferFilter: the category slug
// has already been turned into an id.
type FilterQuery struct {
	CategoryID  string
	CompanySlug string
	SalaryMin   *int64
	SalaryMax   *int64
}

type Repository interface {
	Create(ctx context.Context, o domain.Offer) (*domain.Offer, error)
	List(ctx context.Context, title string, limit, offset int) ([]domain.Offer, int, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Offer, error)
	Update(ctx context.Context, o domain.Offer) (*domain.Offer, error)
	DeleteBySlug(ctx context.Context, slug string) error
	Filter(ctx context.Context, q FilterQuery) ([]domain.Offer, error)
}
