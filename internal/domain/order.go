package domain

import "github.com/shopspring/decimal"

// Order statuses. The lifecycle is permissive: any authenticated status
// update may set any of the four values.
const (
	OrderStatusProcessing = "processing"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusPacked     = "packed"
	OrderStatusDelivered  = "delivered"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusProcessing, OrderStatusConfirmed, OrderStatusPacked, OrderStatusDelivered:
		return true
	}
	return false
}

// Order records a customer purchase. There is no foreign key to a user;
// customer-scoped lookups match on name+phone equality. CreatedAt is
// seconds since epoch.
type Order struct {
	ID           int64           `json:"id" db:"id"`
	CustomerName string          `json:"customerName" db:"customer_name"`
	Phone        string          `json:"phone" db:"phone"`
	AddressLine  string          `json:"addressLine" db:"address_line"`
	City         string          `json:"city" db:"city"`
	Total        decimal.Decimal `json:"total" db:"total"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    int64           `json:"createdAt" db:"created_at"`
}
