package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nova-commerce/internal/domain"
)

// StatsRepository runs the aggregate count and recent-N queries backing
// the dashboard.
type StatsRepository interface {
	CountProducts(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
	CountOrders(ctx context.Context) (int, error)
	RecentProducts(ctx context.Context, limit int) ([]domain.RecentProduct, error)
	RecentAccountUsers(ctx context.Context, limit int) ([]domain.RecentUser, error)
	RecentDirectoryUsers(ctx context.Context, limit int) ([]domain.RecentUser, error)
	RecentOrders(ctx context.Context, limit int) ([]domain.RecentOrder, error)
}

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new instance of StatsRepository
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) count(ctx context.Context, query string) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return count, nil
}

func (r *statsRepository) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`)
}

// CountUsers counts the union of both user variants.
func (r *statsRepository) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT (SELECT COUNT(*) FROM app_users) + (SELECT COUNT(*) FROM users)`)
}

func (r *statsRepository) CountOrders(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders`)
}

func (r *statsRepository) RecentProducts(ctx context.Context, limit int) ([]domain.RecentProduct, error) {
	query := `
		SELECT id, name, price, created_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent products: %w", err)
	}
	defer rows.Close()

	products := []domain.RecentProduct{}
	for rows.Next() {
		var p domain.RecentProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent products: %w", err)
	}

	return products, nil
}

func (r *statsRepository) RecentAccountUsers(ctx context.Context, limit int) ([]domain.RecentUser, error) {
	return r.recentUsers(ctx, `
		SELECT id, full_name, email, created_at
		FROM app_users
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
}

func (r *statsRepository) RecentDirectoryUsers(ctx context.Context, limit int) ([]domain.RecentUser, error) {
	return r.recentUsers(ctx, `
		SELECT id, full_name, email, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
}

func (r *statsRepository) recentUsers(ctx context.Context, query string, limit int) ([]domain.RecentUser, error) {
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent users: %w", err)
	}
	defer rows.Close()

	users := []domain.RecentUser{}
	for rows.Next() {
		var u domain.RecentUser
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent users: %w", err)
	}

	return users, nil
}

func (r *statsRepository) RecentOrders(ctx context.Context, limit int) ([]domain.RecentOrder, error) {
	query := `
		SELECT id, customer_name, total, status, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.RecentOrder{}
	for rows.Next() {
		var o domain.RecentOrder
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent order: %w", err)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent orders: %w", err)
	}

	return orders, nil
}
