package enterprise

import (
	"context"
	"strings"

	"offerboard/internal/domain"
	"offerboard/internal/repository/enterprise"

	"github.com/gosimple/slug"
)

type Service struct {
	repo enterprise.Repository
}

func New(repo enterprise.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Enterprise, int, error) {
	limit, offset = domain.NormalizePage(limit, offset)
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Enterprise, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// GetByName looks an enterprise up by its exact display name, which is how
// offers reference their company.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.Enterprise, error) {
	return s.repo.GetByName(ctx, strings.TrimSpace(name))
}

func (s *Service) Upsert(ctx context.Context, e domain.Enterprise) (*domain.Enterprise, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return nil, domain.NewValidationError("enterprise name required")
	}
	if e.Slug == "" {
		e.Slug = slug.Make(e.Name)
	}
	return s.repo.Upsert(ctx, e)
}
