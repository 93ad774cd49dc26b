package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type baseCategory struct {
	ID       int64
	Title    string
	Slug     string
	ImageURL string
}

// BaseCategories are reseeded on every startup. Categories with other
// slugs are removed; products pointing at them keep a dangling reference.
var BaseCategories = []baseCategory{
	{ID: 1, Title: "Men's Shirts", Slug: "mens", ImageURL: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab"},
	{ID: 2, Title: "Women's Shirts", Slug: "womens", ImageURL: "https://images.unsplash.com/photo-1441986300917-64674bd600d8"},
	{ID: 3, Title: "Kids Shirts", Slug: "kids", ImageURL: "https://images.unsplash.com/photo-1503919545889-aef636e10ad4"},
}

// SeedCategories restores the base category set inside one transaction.
func SeedCategories(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM categories WHERE slug IS NULL OR slug NOT IN ($1, $2, $3)`,
		BaseCategories[0].Slug, BaseCategories[1].Slug, BaseCategories[2].Slug,
	); err != nil {
		return fmt.Errorf("failed to prune categories: %w", err)
	}

	for _, c := range BaseCategories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, title, slug, image_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title,
			                               slug = EXCLUDED.slug,
			                               image_url = EXCLUDED.image_url
		`, c.ID, c.Title, c.Slug, c.ImageURL); err != nil {
			return fmt.Errorf("failed to upsert category %q: %w", c.Slug, err)
		}
	}

	// Keep the sequence ahead of the fixed seed ids.
	if _, err := tx.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('categories', 'id'), GREATEST((SELECT MAX(id) FROM categories), 1))`,
	); err != nil {
		return fmt.Errorf("failed to advance category sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logger.Info("Base categories seeded", zap.Int("count", len(BaseCategories)))
	return nil
}
