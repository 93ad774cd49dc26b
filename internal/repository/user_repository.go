package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nova-commerce/internal/domain"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already exists")
)

// DirectoryUserRepository accesses admin-entered contacts (the users table).
type DirectoryUserRepository interface {
	List(ctx context.Context) ([]*domain.DirectoryUser, error)
	FindByID(ctx context.Context, id int64) (*domain.DirectoryUser, error)
	Update(ctx context.Context, user *domain.DirectoryUser) error
	Delete(ctx context.Context, id int64) error
}

type directoryUserRepository struct {
	db *sql.DB
}

// NewDirectoryUserRepository creates a new instance of DirectoryUserRepository
func NewDirectoryUserRepository(db *sql.DB) DirectoryUserRepository {
	return &directoryUserRepository{db: db}
}

// List retrieves all directory users newest first.
func (r *directoryUserRepository) List(ctx context.Context) ([]*domain.DirectoryUser, error) {
	query := `
		SELECT id, full_name, email, phone, avatar_url, notes, created_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory users: %w", err)
	}
	defer rows.Close()

	users := []*domain.DirectoryUser{}
	for rows.Next() {
		user := &domain.DirectoryUser{}
		err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.Phone,
			&user.AvatarURL,
			&user.Notes,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating directory users: %w", err)
	}

	return users, nil
}

// FindByID retrieves a directory user by ID using parameterized queries
func (r *directoryUserRepository) FindByID(ctx context.Context, id int64) (*domain.DirectoryUser, error) {
	query := `
		SELECT id, full_name, email, phone, avatar_url, notes, created_at
		FROM users
		WHERE id = $1
	`

	user := &domain.DirectoryUser{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Phone,
		&user.AvatarURL,
		&user.Notes,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find directory user by ID: %w", err)
	}

	return user, nil
}

// Update persists every field of an existing directory user.
func (r *directoryUserRepository) Update(ctx context.Context, user *domain.DirectoryUser) error {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, phone = $4, avatar_url = $5, notes = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, user.ID, user.FullName, user.Email, user.Phone, user.AvatarURL, user.Notes)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("failed to update directory user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete removes a directory user.
func (r *directoryUserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete directory user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
