package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type categorySeed struct {
	Slug        string
	Name        string
	Description string
}

type enterpriseSeed struct {
	Slug     string
	Name     string
	Location string
}

type offerSeed struct {
	Slug         string
	Title        string
	Enterprise   string
	Category     string
	Location     string
	Description  string
	Requirements string
	Salary       int64
}

var categories = []categorySeed{
	{Slug: "engineering", Name: "Engineering", Description: "Software and hardware engineering roles"},
	{Slug: "design", Name: "Design", Description: "Product and visual design roles"},
}

var enterprises = []enterpriseSeed{
	{Slug: "acme", Name: "Acme", Location: "Madrid"},
	{Slug: "globex", Name: "Globex", Location: "Remote"},
}

var offers = []offerSeed{
	{
		Slug:         "backend-engineer-demo01",
		Title:        "Backend Engineer",
		Enterprise:   "acme",
		Category:     "engineering",
		Location:     "Madrid",
		Description:  "Build and run the offers API",
		Requirements: "Go, PostgreSQL",
		Salary:       50000,
	},
	{
		Slug:         "product-designer-demo02",
		Title:        "Product Designer",
		Enterprise:   "globex",
		Category:     "design",
		Location:     "Remote",
		Description:  "Own the candidate-facing experience",
		Requirements: "Figma, user research",
		Salary:       42000,
	},
}

// Apply inserts demo categories, enterprises and offerts for manual testing.
// It is idempotent via ON CONFLICT on the slug columns.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger logrus.FieldLogger) error {
	for _, c := range categories {
		if err := upsertCategory(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
	}
	for _, e := range enterprises {
		if err := upsertEnterprise(ctx, pool, e); err != nil {
			return fmt.Errorf("upsert enterprise %s: %w", e.Slug, err)
		}
	}
	for _, o := range offers {
		if err := upsertOffer(ctx, pool, o); err != nil {
			return fmt.Errorf("upsert offert %s: %w", o.Slug, err)
		}
	}
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"categorys":   len(categories),
			"enterprises": len(enterprises),
			"offerts":     len(offers),
		}).Info("seed data upserted")
	}
	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) error {
	const q = `
INSERT INTO categorys (slug, name, description)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description
`
	_, err := pool.Exec(ctx, q, c.Slug, c.Name, c.Description)
	return err
}

func upsertEnterprise(ctx context.Context, pool *pgxpool.Pool, e enterpriseSeed) error {
	const q = `
INSERT INTO enterprises (slug, name, location)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    location = EXCLUDED.location
`
	_, err := pool.Exec(ctx, q, e.Slug, e.Name, e.Location)
	return err
}

// upsertOffer snapshots the enterprise name and resolves the category id in
// the same statement so reruns pick up renamed seed rows.
func upsertOffer(ctx context.Context, pool *pgxpool.Pool, o offerSeed) error {
	const q = `
INSERT INTO offerts (slug, title, company, company_slug, location, description, requirements, salary, category_id, category_slug)
SELECT $1, $2, e.name, e.slug, $5, $6, $7, $8, c.id, c.slug
FROM enterprises e, categorys c
WHERE e.slug = $3 AND c.slug = $4
ON CONFLICT (slug) DO UPDATE
SET title = EXCLUDED.title,
    company = EXCLUDED.company,
    company_slug = EXCLUDED.company_slug,
    location = EXCLUDED.location,
    description = EXCLUDED.description,
    requirements = EXCLUDED.requirements,
    salary = EXCLUDED.salary,
    category_id = EXCLUDED.category_id,
    category_slug = EXCLUDED.category_slug,
    updated_at = now()
`
	tag, err := pool.Exec(ctx, q, o.Slug, o.Title, o.Enterprise, o.Category, o.Location, o.Description, o.Requirements, o.Salary)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("enterprise %q or category %q missing", o.Enterprise, o.Category)
	}
	return nil
}
