package repository

import (
	"context"
	"testing"

	"nova-commerce/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCategory(t *testing.T, title, slug string) *domain.Category {
	t.Helper()
	repo := NewCategoryRepository(testDB)
	category := &domain.Category{Title: title, Slug: &slug}
	require.NoError(t, repo.Create(context.Background(), category))
	return category
}

func testProduct(categoryID *int64) *domain.Product {
	return &domain.Product{
		Name:            "Linen Shirt",
		Description:     "breathable linen",
		Price:           decimal.RequireFromString("49.99"),
		DiscountPercent: 10,
		ImageURL:        "/uploads/products/shirt.jpg",
		Images:          []string{"/uploads/products/shirt.jpg", "/uploads/products/shirt-2.jpg"},
		CategoryID:      categoryID,
		Sizes:           []string{"S", "M", "L"},
		Colors:          []string{"white", "navy"},
		Stock:           5,
		Featured:        true,
	}
}

// Feature: commerce-backoffice, Property 20: List fields survive persistence
func TestProperty_ProductListFieldsSurvivePersistence(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("sizes, colors, and images round-trip through the database", prop.ForAll(
		func(sizes []string, colors []string, images []string) bool {
			if len(images) == 0 {
				images = []string{"/uploads/products/default.jpg"}
			}

			product := testProduct(nil)
			product.Sizes = sizes
			product.Colors = colors
			product.Images = images
			product.ImageURL = images[0]

			id, err := repo.Create(ctx, product)
			if err != nil {
				t.Logf("FAIL: create failed: %v", err)
				return false
			}
			defer repo.Delete(ctx, id)

			stored, err := repo.FindByID(ctx, id)
			if err != nil {
				t.Logf("FAIL: find failed: %v", err)
				return false
			}

			if len(stored.Sizes) != len(sizes) || len(stored.Colors) != len(colors) || len(stored.Images) != len(images) {
				t.Logf("FAIL: list length mismatch")
				return false
			}
			for i := range sizes {
				if stored.Sizes[i] != sizes[i] {
					return false
				}
			}
			for i := range colors {
				if stored.Colors[i] != colors[i] {
					return false
				}
			}
			for i := range images {
				if stored.Images[i] != images[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.RegexMatch(`[A-Z0-9 ]{1,10}`)),
		gen.SliceOf(gen.RegexMatch(`[a-z]{3,10}`)),
		gen.SliceOf(gen.RegexMatch(`/uploads/products/[a-z0-9-]{5,20}\.jpg`)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductCRUD(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	category := createTestCategory(t, "Shirts", "shirts")
	defer NewCategoryRepository(testDB).Delete(ctx, category.ID)

	id, err := repo.Create(ctx, testProduct(&category.ID))
	require.NoError(t, err)
	defer repo.Delete(ctx, id)

	stored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "Linen Shirt", stored.Name)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("49.99")))
	require.NotNil(t, stored.Category)
	assert.Equal(t, category.ID, stored.Category.ID)
	assert.Equal(t, "Shirts", stored.Category.Title)

	stored.Name = "Cotton Shirt"
	stored.Stock = 9
	require.NoError(t, repo.Update(ctx, stored))

	updated, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Cotton Shirt", updated.Name)
	assert.Equal(t, 9, updated.Stock)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductSurvivesCategoryDelete(t *testing.T) {
	products := NewProductRepository(testDB)
	categories := NewCategoryRepository(testDB)
	ctx := context.Background()

	category := createTestCategory(t, "Doomed", "doomed")

	id, err := products.Create(ctx, testProduct(&category.ID))
	require.NoError(t, err)
	defer products.Delete(ctx, id)

	require.NoError(t, categories.Delete(ctx, category.ID))

	stored, err := products.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, stored.CategoryID)
	assert.Nil(t, stored.Category)
}

func TestProductListFilters(t *testing.T) {
	products := NewProductRepository(testDB)
	categories := NewCategoryRepository(testDB)
	ctx := context.Background()

	category := createTestCategory(t, "Filtered", "filtered")
	defer categories.Delete(ctx, category.ID)

	featured := testProduct(&category.ID)
	featured.Name = "Featured Parka"
	featuredID, err := products.Create(ctx, featured)
	require.NoError(t, err)
	defer products.Delete(ctx, featuredID)

	plain := testProduct(&category.ID)
	plain.Name = "Plain Tee"
	plain.Featured = false
	plainID, err := products.Create(ctx, plain)
	require.NoError(t, err)
	defer products.Delete(ctx, plainID)

	t.Run("by category slug", func(t *testing.T) {
		got, err := products.List(ctx, ProductFilter{CategorySlug: "filtered"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("featured only", func(t *testing.T) {
		got, err := products.List(ctx, ProductFilter{CategoryID: &category.ID, FeaturedOnly: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Featured Parka", got[0].Name)
	})

	t.Run("case-insensitive search", func(t *testing.T) {
		got, err := products.List(ctx, ProductFilter{CategoryID: &category.ID, Search: "parka"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Featured Parka", got[0].Name)
	})
}

func TestCategoryUniqueSlug(t *testing.T) {
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	first := createTestCategory(t, "Unique", "uniq")
	defer repo.Delete(ctx, first.ID)

	slug := "uniq"
	err := repo.Create(ctx, &domain.Category{Title: "Duplicate", Slug: &slug})
	assert.ErrorIs(t, err, ErrCategoryAlreadyExists)
}

// Malformed stored list data must not break the read path.
func TestProductReadsMalformedListColumns(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	var id int64
	err := testDB.QueryRowContext(ctx, `
		INSERT INTO products (name, price, image_url, images, sizes, colors)
		VALUES ('Legacy Row', 10, '/uploads/products/legacy.jpg', '/uploads/products/legacy.jpg', 'not json', '["ok"')
		RETURNING id
	`).Scan(&id)
	require.NoError(t, err)
	defer repo.Delete(ctx, id)

	stored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	// A bare scalar image column is recovered as a one-element list.
	assert.Equal(t, []string{"/uploads/products/legacy.jpg"}, stored.Images)
	assert.Empty(t, stored.Sizes)
	assert.Empty(t, stored.Colors)
}
