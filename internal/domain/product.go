package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxProductImages bounds the ordered image list; the first entry is the
// primary image used by list views.
const MaxProductImages = 3

// Product represents a catalog product. Images, Sizes, and Colors are
// persisted as serialized lists (see internal/serialize); CategoryID may
// dangle after a category delete, in which case Category is nil in the
// read model.
type Product struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Description     string          `json:"description" db:"description"`
	Price           decimal.Decimal `json:"price" db:"price"`
	DiscountPercent float64         `json:"discountPercent" db:"discount_percent"`
	ImageURL        string          `json:"imageUrl" db:"image_url"`
	Images          []string        `json:"images"`
	CategoryID      *int64          `json:"categoryId" db:"category_id"`
	Category        *CategoryRef    `json:"category"`
	Sizes           []string        `json:"sizes"`
	Colors          []string        `json:"colors"`
	Stock           int             `json:"stock" db:"stock"`
	Featured        bool            `json:"featured" db:"featured"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}
