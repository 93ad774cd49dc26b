package service

import (
	"context"
	"strings"
	"time"

	"nova-commerce/internal/domain"
	"nova-commerce/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderService records and transitions orders. The status field is a
// permissive state machine: any of the four known values may be set by
// an authenticated status update, in any order.
type OrderService interface {
	Create(ctx context.Context, input OrderInput) (*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListForCustomer(ctx context.Context, customerName, phone string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// OrderInput carries the checkout form fields.
type OrderInput struct {
	CustomerName string
	Phone        string
	AddressLine  string
	City         string
	Total        decimal.Decimal
}

type orderService struct {
	orders repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

// Create records a new order with the initial processing status and the
// current epoch-second timestamp.
func (s *orderService) Create(ctx context.Context, input OrderInput) (*domain.Order, error) {
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.Phone) == "" ||
		strings.TrimSpace(input.AddressLine) == "" || strings.TrimSpace(input.City) == "" {
		return nil, NewValidationError("all fields are required")
	}
	if input.Total.IsNegative() {
		return nil, NewValidationError("total must be a non-negative number")
	}

	order := &domain.Order{
		CustomerName: input.CustomerName,
		Phone:        input.Phone,
		AddressLine:  input.AddressLine,
		City:         input.City,
		Total:        input.Total,
		Status:       domain.OrderStatusProcessing,
		CreatedAt:    time.Now().Unix(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Get retrieves an order by id.
func (s *orderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// ListAll retrieves every order, newest first.
func (s *orderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// ListForCustomer is the unauthenticated self-service lookup: both
// fields must match the stored values exactly.
func (s *orderService) ListForCustomer(ctx context.Context, customerName, phone string) ([]*domain.Order, error) {
	if customerName == "" || phone == "" {
		return nil, NewValidationError("customer name and phone are required")
	}
	return s.orders.ListByCustomer(ctx, customerName, phone)
}

// UpdateStatus sets the order status to any of the known values and
// returns the refreshed order.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	if status == "" {
		return nil, NewValidationError("status is required")
	}
	if !domain.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.orders.FindByID(ctx, id)
}

// Delete removes one order.
func (s *orderService) Delete(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}

// DeleteAll clears every order and reports the count removed.
func (s *orderService) DeleteAll(ctx context.Context) (int64, error) {
	return s.orders.DeleteAll(ctx)
}
