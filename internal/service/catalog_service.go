package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"nova-commerce/internal/domain"
	"nova-commerce/internal/repository"
	"nova-commerce/internal/serialize"

	"github.com/shopspring/decimal"
)

// Discount percent bounds, inclusive.
const (
	MinDiscountPercent = 0
	MaxDiscountPercent = 95
)

// ProductInput carries the raw multipart form fields of a product
// create or update. A nil pointer means the field was not supplied, so
// an update keeps the existing value (omission is not null).
// UploadedImages are the public URLs of files already written by the
// upload store, in upload order.
type ProductInput struct {
	Name            *string
	Description     *string
	Price           *string
	DiscountPercent *string
	CategoryID      *string
	Sizes           *string
	Colors          *string
	Stock           *string
	Featured        *string
	ImageURLs       *string
	UploadedImages  []string
}

// CatalogService applies catalog mutations, recomputing derived fields
// (primary image, serialized lists, category read model) on every write.
type CatalogService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)

	CreateCategory(ctx context.Context, title string, imageURL *string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, title *string, imageURL *string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
	}
}

// CreateProduct validates required fields, merges the image inputs, and
// persists a new product. The returned product is the joined read model.
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" ||
		input.Price == nil || input.CategoryID == nil {
		return nil, NewValidationError("name, price, and category are required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(*input.Price))
	if err != nil || price.IsNegative() {
		return nil, NewValidationError("price must be a non-negative number")
	}

	categoryID, err := strconv.ParseInt(strings.TrimSpace(*input.CategoryID), 10, 64)
	if err != nil {
		return nil, NewValidationError("category must be a valid id")
	}

	discount, err := parseDiscount(input.DiscountPercent)
	if err != nil {
		return nil, err
	}

	images, err := reconcileImages(input.UploadedImages, input.ImageURLs, nil)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:            strings.TrimSpace(*input.Name),
		Description:     stringOr(input.Description, ""),
		Price:           price,
		DiscountPercent: discount,
		ImageURL:        images[0],
		Images:          images,
		CategoryID:      &categoryID,
		Sizes:           listOr(input.Sizes, nil),
		Colors:          listOr(input.Colors, nil),
		Stock:           stockOr(input.Stock, 0),
		Featured:        boolValue(input.Featured),
	}

	id, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	return s.products.FindByID(ctx, id)
}

// UpdateProduct applies a partial update: every field not present in the
// input keeps its existing value, and the list fields are re-encoded
// only when actually supplied.
func (s *catalogService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*input.Price))
		if err != nil || price.IsNegative() {
			return nil, NewValidationError("price must be a non-negative number")
		}
		existing.Price = price
	}
	if input.CategoryID != nil {
		categoryID, err := strconv.ParseInt(strings.TrimSpace(*input.CategoryID), 10, 64)
		if err != nil {
			return nil, NewValidationError("category must be a valid id")
		}
		existing.CategoryID = &categoryID
	}
	if input.DiscountPercent != nil {
		discount, err := parseDiscount(input.DiscountPercent)
		if err != nil {
			return nil, err
		}
		existing.DiscountPercent = discount
	}
	if input.Sizes != nil {
		existing.Sizes = serialize.SplitList(*input.Sizes)
	}
	if input.Colors != nil {
		existing.Colors = serialize.SplitList(*input.Colors)
	}
	if input.Stock != nil {
		existing.Stock = stockOr(input.Stock, existing.Stock)
	}
	if input.Featured != nil {
		existing.Featured = boolValue(input.Featured)
	}

	images, err := reconcileImages(input.UploadedImages, input.ImageURLs, existing)
	if err != nil {
		return nil, err
	}
	existing.Images = images
	existing.ImageURL = images[0]

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, err
	}

	return s.products.FindByID(ctx, id)
}

// DeleteProduct hard-deletes a product.
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

// GetProduct retrieves the joined product read model.
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// ListProducts retrieves products matching the filter, newest first.
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	return s.products.List(ctx, filter)
}

// CreateCategory creates a category; title is mandatory.
func (s *catalogService) CreateCategory(ctx context.Context, title string, imageURL *string) (*domain.Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, NewValidationError("title is required")
	}

	category := &domain.Category{
		Title:    strings.TrimSpace(title),
		ImageURL: imageURL,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategory applies a partial category update.
func (s *catalogService) UpdateCategory(ctx context.Context, id int64, title *string, imageURL *string) (*domain.Category, error) {
	existing, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != nil && strings.TrimSpace(*title) != "" {
		existing.Title = strings.TrimSpace(*title)
	}
	if imageURL != nil {
		existing.ImageURL = imageURL
	}

	if err := s.categories.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteCategory removes a category without touching its products; the
// read-model join tolerates the dangling reference.
func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

// GetCategory retrieves a category by id.
func (s *catalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// ListCategories retrieves all categories ordered by title.
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// parseDiscount turns the raw discount field into a percentage. An
// absent or unparsable value defaults to 0; a parsable value outside
// [0, 95] is rejected.
func parseDiscount(raw *string) (float64, error) {
	if raw == nil {
		return 0, nil
	}
	discount, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return 0, nil
	}
	if discount < MinDiscountPercent || discount > MaxDiscountPercent {
		return 0, NewValidationError(fmt.Sprintf("discount percent must be between %d and %d", MinDiscountPercent, MaxDiscountPercent))
	}
	return discount, nil
}

// stockOr parses the raw stock field, falling back when absent or not a
// valid non-negative integer.
func stockOr(raw *string, fallback int) int {
	if raw == nil {
		return fallback
	}
	stock, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil || stock < 0 {
		return fallback
	}
	return stock
}

func stringOr(raw *string, fallback string) string {
	if raw == nil {
		return fallback
	}
	return *raw
}

func listOr(raw *string, fallback []string) []string {
	if raw == nil {
		return fallback
	}
	return serialize.SplitList(*raw)
}

// boolValue interprets the form's truthy values.
func boolValue(raw *string) bool {
	if raw == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(*raw)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
