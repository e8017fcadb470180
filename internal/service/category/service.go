package category

import (
	"context"
	"strings"

	"offerboard/internal/domain"
	"offerboard/internal/repository/category"

	"github.com/gosimple/slug"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Category, int, error) {
	limit, offset = domain.NormalizePage(limit, offset)
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Upsert stores c keyed by its slug, deriving the slug from the name when
// it is empty.
func (s *Service) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, domain.NewValidationError("category name required")
	}
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return s.repo.Upsert(ctx, c)
}
