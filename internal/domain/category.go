package domain

import "time"

// Category groups products in the storefront. Slug is a stable
// machine-readable key; the three base categories are reseeded at startup.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Slug      *string   `json:"slug" db:"slug"`
	ImageURL  *string   `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CategoryRef is the denormalized category shape embedded in product
// read models. It is nil when the product's category has been deleted.
type CategoryRef struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Slug  *string `json:"slug"`
}
