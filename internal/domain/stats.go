package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stats is the dashboard payload: entity totals plus "recent 5"
// projections per entity type.
type Stats struct {
	Totals     StatsTotals     `json:"totals"`
	Highlights StatsHighlights `json:"highlights"`
}

type StatsTotals struct {
	Products int `json:"products"`
	Users    int `json:"users"`
	Orders   int `json:"orders"`
}

type StatsHighlights struct {
	RecentProducts []RecentProduct `json:"recentProducts"`
	RecentUsers    []RecentUser    `json:"recentUsers"`
	RecentOrders   []RecentOrder   `json:"recentOrders"`
}

type RecentProduct struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

type RecentUser struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecentOrder struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    int64           `json:"createdAt"`
}
