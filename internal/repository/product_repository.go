package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nova-commerce/internal/domain"
	"nova-commerce/internal/serialize"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter narrows the product listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID   *int64
	CategorySlug string
	FeaturedOnly bool
	Search       string
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product, serializing its list fields, and returns
// the generated id.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (int64, error) {
	query := `
		INSERT INTO products
			(name, description, price, discount_percent, image_url, images, category_id, sizes, colors, stock, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.DiscountPercent,
		product.ImageURL,
		serialize.EncodeList(product.Images),
		product.CategoryID,
		serialize.EncodeList(product.Sizes),
		serialize.EncodeList(product.Colors),
		product.Stock,
		product.Featured,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	return id, nil
}

// Update persists every field of an existing product. The database
// trigger refreshes updated_at on every update.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, discount_percent = $5,
		    image_url = $6, images = $7, category_id = $8, sizes = $9,
		    colors = $10, stock = $11, featured = $12
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.DiscountPercent,
		product.ImageURL,
		serialize.EncodeList(product.Images),
		product.CategoryID,
		serialize.EncodeList(product.Sizes),
		serialize.EncodeList(product.Colors),
		product.Stock,
		product.Featured,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database using parameterized queries
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.discount_percent,
	       p.image_url, p.images, p.category_id, p.sizes, p.colors,
	       p.stock, p.featured, p.created_at, p.updated_at,
	       c.id, c.title, c.slug
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

// scanProduct reads one joined row, decoding list fields. Malformed
// stored lists decode to empty rather than failing the read.
func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	product := &domain.Product{}
	var images, sizes, colors string
	var catID sql.NullInt64
	var catTitle sql.NullString
	var catSlug *string

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.DiscountPercent,
		&product.ImageURL,
		&images,
		&product.CategoryID,
		&sizes,
		&colors,
		&product.Stock,
		&product.Featured,
		&product.CreatedAt,
		&product.UpdatedAt,
		&catID,
		&catTitle,
		&catSlug,
	)
	if err != nil {
		return nil, err
	}

	product.Images = serialize.DecodeImages(images)
	product.Sizes = serialize.DecodeList(sizes)
	product.Colors = serialize.DecodeList(colors)

	if catID.Valid {
		product.Category = &domain.CategoryRef{
			ID:    catID.Int64,
			Title: catTitle.String,
			Slug:  catSlug,
		}
	}

	return product, nil
}

// FindByID retrieves a product joined with its category read model.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves products newest first with optional category, featured,
// and case-insensitive search filters.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	query := productSelect
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}
	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argIndex))
		args = append(args, filter.CategorySlug)
		argIndex++
	}
	if filter.FeaturedOnly {
		conditions = append(conditions, "p.featured = TRUE")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
