package offer

import (
	"context"
	"fmt"
	"io"

	"offerboard/internal/domain"
	"offerboard/internal/repository/pgutil"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const tableName = "offerts"

var columns = []string{
	"id::text AS id", "slug", "title", "company", "company_slug", "location",
	"description", "requirements", "salary", "category_id::text AS category_id",
	"category_slug", "image", "created_at", "updated_at",
}

const returning = `RETURNING id::text AS id, slug, title, company, company_slug, location, description, requirements, salary, category_id::text AS category_id, category_slug, image, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger logrus.FieldLogger
}

func NewPostgres(pool *pgxpool.Pool, logger logrus.FieldLogger) Repository {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &postgresRepo{pool: pool, logger: logger.WithField("repo", "offer")}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Offer) (*domain.Offer, error) {
	query, args, err := pgutil.Psql().
		Insert(tableName).
		Columns("slug", "title", "company", "company_slug", "location", "description", "requirements", "salary", "category_id", "category_slug", "image").
		Values(o.Slug, o.Title, o.Company, o.CompanySlug, o.Location, o.Description, o.Requirements, o.Salary, o.CategoryID, o.CategorySlug, o.Image).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build offer insert: %w", err)
	}

	var out domain.Offer
	if err := pgxscan.Get(ctx, r.pool, &out, query, args...); err != nil {
		if pgutil.IsUniqueViolation(err) {
			r.logger.WithField("slug", o.Slug).Warn("slug already taken")
			return nil, fmt.Errorf("offer slug %q: %w", o.Slug, domain.ErrAlreadyExists)
		}
		r.logger.WithError(err).WithField("slug", o.Slug).Error("insert offer")
		return nil, fmt.Errorf("insert offer: %w", err)
	}
	r.logger.WithFields(logrus.Fields{"slug": out.Slug, "id": out.ID}).Debug("offer created")
	return &out, nil
}

func (r *postgresRepo) List(ctx context.Context, title string, limit, offset int) ([]domain.Offer, int, error) {
	var where sq.Sqlizer = sq.Expr("TRUE")
	if title != "" {
		where = sq.ILike{"title": pgutil.ContainsPattern(title)}
	}

	query, args, err := pgutil.Psql().
		Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("created_at DESC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build offer list: %w", err)
	}

	result := make([]domain.Offer, 0)
	if err := pgxscan.Select(ctx, r.pool, &result, query, args...); err != nil {
		r.logger.WithError(err).WithField("title", title).Error("list offers")
		return nil, 0, fmt.Errorf("list offers: %w", err)
	}

	countQuery, countArgs, err := pgutil.Psql().Select("count(*)").From(tableName).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build offer count: %w", err)
	}
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count offers: %w", err)
	}

	r.logger.WithFields(logrus.Fields{"title": title, "count": len(result), "total": total}).Debug("offers listed")
	return result, total, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Offer, error) {
	query, args, err := pgutil.Psql().
		Select(columns...).
		From(tableName).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build offer query: %w", err)
	}

	var o domain.Offer
	if err := pgxscan.Get(ctx, r.pool, &o, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetch offer: %w", err)
	}
	return &o, nil
}

func (r *postgresRepo) Update(ctx context.Context, o domain.Offer) (*domain.Offer, error) {
	query, args, err := pgutil.Psql().
		Update(tableName).
		SetMap(map[string]interface{}{
			"title":         o.Title,
			"company":       o.Company,
			"company_slug":  o.CompanySlug,
			"location":      o.Location,
			"description":   o.Description,
			"requirements":  o.Requirements,
			"salary":        o.Salary,
			"category_id":   o.CategoryID,
			"category_slug": o.CategorySlug,
			"image":         o.Image,
			"updated_at":    sq.Expr("now()"),
		}).
		Where(sq.Eq{"slug": o.Slug}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build offer update: %w", err)
	}

	var out domain.Offer
	if err := pgxscan.Get(ctx, r.pool, &out, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNotFound
		}
		r.logger.WithError(err).WithField("slug", o.Slug).Error("update offer")
		return nil, fmt.Errorf("update offer: %w", err)
	}
	return &out, nil
}

func (r *postgresRepo) DeleteBySlug(ctx context.Context, slug string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM offerts WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.WithField("slug", slug).Debug("offer deleted")
	return nil
}

func (r *postgresRepo) Filter(ctx context.Context, q FilterQuery) ([]domain.Offer, error) {
	query, args, err := filterQuery(q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build offer filter: %w", err)
	}

	result := make([]domain.Offer, 0)
	if err := pgxscan.Select(ctx, r.pool, &result, query, args...); err != nil {
		r.logger.WithError(err).Error("filter offers")
		return nil, fmt.Errorf("filter offers: %w", err)
	}
	return result, nil
}

func filterQuery(q FilterQuery) sq.SelectBuilder {
	b := pgutil.Psql().Select(columns...).From(tableName)
	if q.CategoryID != "" {
		b = b.Where(sq.Eq{"category_id": q.CategoryID})
	}
	if q.CompanySlug != "" {
		b = b.Where(sq.Eq{"company_slug": q.CompanySlug})
	}
	if q.SalaryMin != nil {
		b = b.Where(sq.GtOrEq{"salary": *q.SalaryMin})
	}
	if q.SalaryMax != nil {
		b = b.Where(sq.LtOrEq{"salary": *q.SalaryMax})
	}
	return b.OrderBy("created_at DESC", "id ASC")
}
