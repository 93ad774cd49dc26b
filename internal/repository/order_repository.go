package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nova-commerce/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, customerName, phone string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	DeleteByCustomer(ctx context.Context, customerName string, phone *string) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order and fills in its generated id.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (customer_name, phone, address_line, city, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		order.CustomerName,
		order.Phone,
		order.AddressLine,
		order.City,
		order.Total,
		order.Status,
		order.CreatedAt,
	).Scan(&order.ID)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

const orderSelect = `
	SELECT id, customer_name, phone, address_line, city, total, status, created_at
	FROM orders
`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	order := &domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.Phone,
		&order.AddressLine,
		&order.City,
		&order.Total,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID retrieves an order by ID using parameterized queries
func (r *orderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, orderSelect+` WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	return order, nil
}

// List retrieves all orders newest first.
func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, orderSelect+` ORDER BY created_at DESC`)
}

// ListByCustomer retrieves orders matching both customer name and phone
// exactly. This is the unauthenticated customer self-service lookup.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerName, phone string) ([]*domain.Order, error) {
	return r.list(ctx,
		orderSelect+` WHERE customer_name = $1 AND phone = $2 ORDER BY created_at DESC`,
		customerName, phone,
	)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus sets the order status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Delete removes an order.
func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// DeleteAll clears every order and reports how many were removed.
func (r *orderRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear orders: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// DeleteByCustomer removes the orders tied to a customer by name, and by
// phone when one is known. Used when an admin deletes the user record.
func (r *orderRepository) DeleteByCustomer(ctx context.Context, customerName string, phone *string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE customer_name = $1`, customerName); err != nil {
		return fmt.Errorf("failed to delete customer orders: %w", err)
	}
	if phone != nil && *phone != "" {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE phone = $1`, *phone); err != nil {
			return fmt.Errorf("failed to delete customer orders by phone: %w", err)
		}
	}
	return nil
}
