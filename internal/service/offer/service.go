package offer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"offerboard/internal/domain"
	offerrepo "offerboard/internal/repository/offer"

	"github.com/sirupsen/logrus"
)

const maxSlugAttempts = 5

const (
	errCategoryNotFound   = "category not found"
	errEnterpriseNotFound = "enterprise not found"
)

type CategoryLookup interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type EnterpriseLookup interface {
	GetByName(ctx context.Context, name string) (*domain.Enterprise, error)
}

// Cache is an optional read-through cache for offers keyed by slug.
type Cache interface {
	Get(ctx context.Context, slug string) (*domain.Offer, error)
	Set(ctx context.Context, o domain.Offer) error
	Delete(ctx context.Context, slug string) error
}

// Service implements offer CRUD on top of the repositories, resolving the
// category and enterprise references an offer carries.
type Service struct {
	repo        offerrepo.Repository
	categories  CategoryLookup
	enterprises EnterpriseLookup
	cache       Cache
	logger      logrus.FieldLogger
	token       func() (string, error)
}

func New(repo offerrepo.Repository, categories CategoryLookup, enterprises EnterpriseLookup, logger logrus.FieldLogger) *Service {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Service{
		repo:        repo,
		categories:  categories,
		enterprises: enterprises,
		logger:      logger.WithField("service", "offer"),
		token:       randomToken,
	}
}

// WithCache enables read-through caching of GetBySlug.
func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// CreateInput mirrors the create payload. Company is the enterprise name.
type CreateInput struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Salary       int64  `json:"salary"`
	Image        string `json:"image"`
	CategorySlug string `json:"categorySlug"`
}

// Create validates the category and enterprise references and stores a new
// offer under a freshly generated slug.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Offer, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title required")
	}
	if in.Salary < 0 {
		return nil, domain.NewValidationError("salary must not be negative")
	}

	category, err := s.resolveCategory(ctx, in.CategorySlug)
	if err != nil {
		return nil, err
	}
	enterprise, err := s.resolveEnterprise(ctx, in.Company)
	if err != nil {
		return nil, err
	}

	o := domain.Offer{
		Title:        title,
		Company:      enterprise.Name,
		CompanySlug:  enterprise.Slug,
		Location:     in.Location,
		Description:  in.Description,
		Requirements: in.Requirements,
		Salary:       in.Salary,
		CategoryID:   category.ID,
		CategorySlug: category.Slug,
		Image:        in.Image,
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		o.Slug, err = newSlug(title, s.token)
		if err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}
		created, err := s.repo.Create(ctx, o)
		if err == nil {
			s.logger.WithFields(logrus.Fields{"slug": created.Slug, "company": created.CompanySlug}).Info("offer created")
			return created, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
		s.logger.WithField("slug", o.Slug).Warn("slug collision, regenerating")
	}
	return nil, errors.New("slug collision")
}

// List returns a page of offers whose title contains title (case
// insensitive) plus the total number of matches before pagination.
func (s *Service) List(ctx context.Context, title string, limit, offset int) ([]domain.Offer, int, error) {
	limit, offset = domain.NormalizePage(limit, offset)
	return s.repo.List(ctx, strings.TrimSpace(title), limit, offset)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Offer, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, slug)
		if err != nil {
			s.logger.WithError(err).WithField("slug", slug).Warn("offer cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	o, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, *o); err != nil {
			s.logger.WithError(err).WithField("slug", slug).Warn("offer cache write failed")
		}
	}
	return o, nil
}

// DeleteBySlug removes the offer. Deleting a missing slug reports
// domain.ErrNotFound every time.
func (s *Service) DeleteBySlug(ctx context.Context, slug string) error {
	err := s.repo.DeleteBySlug(ctx, slug)
	s.evict(ctx, slug)
	if err != nil {
		return err
	}
	s.logger.WithField("slug", slug).Info("offer deleted")
	return nil
}

// UpdateBySlug merges patch into the stored offer and re-validates the
// result. The slug is never regenerated.
func (s *Service) UpdateBySlug(ctx context.Context, slug string, patch domain.OfferPatch) (*domain.Offer, error) {
	current, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	next := *current
	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Location != nil {
		next.Location = *patch.Location
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Requirements != nil {
		next.Requirements = *patch.Requirements
	}
	if patch.Salary != nil {
		next.Salary = *patch.Salary
	}
	if patch.Image != nil {
		next.Image = *patch.Image
	}
	if patch.CategorySlug != nil {
		category, err := s.resolveCategory(ctx, *patch.CategorySlug)
		if err != nil {
			return nil, err
		}
		next.CategoryID = category.ID
		next.CategorySlug = category.Slug
	}
	if patch.Company != nil {
		enterprise, err := s.resolveEnterprise(ctx, *patch.Company)
		if err != nil {
			return nil, err
		}
		next.Company = enterprise.Name
		next.CompanySlug = enterprise.Slug
	}

	if err := validate(next); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	s.evict(ctx, slug)
	return updated, nil
}

// Filter returns the offers matching every supplied criterion. An unknown
// category is a validation error and an empty result is domain.ErrNotFound.
func (s *Service) Filter(ctx context.Context, f domain.OfferFilter) ([]domain.Offer, error) {
	if f.SalaryMin != nil && f.SalaryMax != nil && *f.SalaryMin > *f.SalaryMax {
		return nil, domain.NewValidationError("salaryMin greater than salaryMax")
	}

	q := offerrepo.FilterQuery{
		CompanySlug: f.CompanySlug,
		SalaryMin:   f.SalaryMin,
		SalaryMax:   f.SalaryMax,
	}
	if f.CategorySlug != "" {
		category, err := s.resolveCategory(ctx, f.CategorySlug)
		if err != nil {
			return nil, err
		}
		q.CategoryID = category.ID
	}

	offers, err := s.repo.Filter(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, domain.ErrNotFound
	}
	return offers, nil
}

func (s *Service) resolveCategory(ctx context.Context, slug string) (*domain.Category, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, domain.NewValidationError(errCategoryNotFound)
	}
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError(errCategoryNotFound)
		}
		return nil, fmt.Errorf("lookup category %q: %w", slug, err)
	}
	return c, nil
}

func (s *Service) resolveEnterprise(ctx context.Context, name string) (*domain.Enterprise, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError(errEnterpriseNotFound)
	}
	e, err := s.enterprises.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError(errEnterpriseNotFound)
		}
		return nil, fmt.Errorf("lookup enterprise %q: %w", name, err)
	}
	return e, nil
}

func (s *Service) evict(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, slug); err != nil {
		s.logger.WithError(err).WithField("slug", slug).Warn("offer cache evict failed")
	}
}

func validate(o domain.Offer) error {
	if o.Title == "" {
		return domain.NewValidationError("title required")
	}
	if o.Salary < 0 {
		return domain.NewValidationError("salary must not be negative")
	}
	return nil
}
