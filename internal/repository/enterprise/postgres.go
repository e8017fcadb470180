package enterprise

import (
	"context"
	"fmt"

	"offerboard/internal/domain"
	"offerboard/internal/repository/pgutil"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tableName = "enterprises"

var columns = []string{"id::text AS id", "slug", "name", "location", "description", "created_at"}

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context, limit, offset int) ([]domain.Enterprise, int, error) {
	query, args, err := pgutil.Psql().
		Select(columns...).
		From(tableName).
		OrderBy("name ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build enterprises query: %w", err)
	}

	result := make([]domain.Enterprise, 0)
	if err := pgxscan.Select(ctx, r.pool, &result, query, args...); err != nil {
		return nil, 0, fmt.Errorf("fetch enterprises: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM enterprises`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count enterprises: %w", err)
	}
	return result, total, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Enterprise, error) {
	return r.getOne(ctx, sq.Eq{"slug": slug})
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Enterprise, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

func (r *postgresRepo) getOne(ctx context.Context, where sq.Eq) (*domain.Enterprise, error) {
	query, args, err := pgutil.Psql().
		Select(columns...).
		From(tableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build enterprise query: %w", err)
	}

	var e domain.Enterprise
	if err := pgxscan.Get(ctx, r.pool, &e, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetch enterprise: %w", err)
	}
	return &e, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, e domain.Enterprise) (*domain.Enterprise, error) {
	query, args, err := pgutil.Psql().
		Insert(tableName).
		Columns("slug", "name", "location", "description").
		Values(e.Slug, e.Name, e.Location, e.Description).
		Suffix(`ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    location = COALESCE(NULLIF(EXCLUDED.location, ''), enterprises.location),
    description = COALESCE(NULLIF(EXCLUDED.description, ''), enterprises.description)
RETURNING id::text AS id, slug, name, location, description, created_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build enterprise upsert: %w", err)
	}

	var out domain.Enterprise
	if err := pgxscan.Get(ctx, r.pool, &out, query, args...); err != nil {
		if pgutil.IsUniqueViolation(err) {
			return nil, fmt.Errorf("enterprise name %q: %w", e.Name, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("upsert enterprise: %w", err)
	}
	return &out, nil
}
