package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nova-commerce/internal/domain"
)

// AccountUserRepository accesses self-registered customers (the app_users
// table). It is the only component that reads or writes the password hash.
type AccountUserRepository interface {
	Create(ctx context.Context, user *domain.AccountUser) error
	List(ctx context.Context) ([]*domain.AccountUser, error)
	FindByID(ctx context.Context, id int64) (*domain.AccountUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.AccountUser, error)
	Update(ctx context.Context, user *domain.AccountUser) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type accountUserRepository struct {
	db *sql.DB
}

// NewAccountUserRepository creates a new instance of AccountUserRepository
func NewAccountUserRepository(db *sql.DB) AccountUserRepository {
	return &accountUserRepository{db: db}
}

// Create inserts a new account user and fills in the generated id and
// timestamp.
func (r *accountUserRepository) Create(ctx context.Context, user *domain.AccountUser) error {
	query := `
		INSERT INTO app_users (first_name, last_name, full_name, gender, email, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		user.FirstName,
		user.LastName,
		user.FullName,
		user.Gender,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("failed to create account user: %w", err)
	}

	return nil
}

// List retrieves all account users newest first.
func (r *accountUserRepository) List(ctx context.Context) ([]*domain.AccountUser, error) {
	query := `
		SELECT id, first_name, last_name, full_name, gender, email, password, created_at
		FROM app_users
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list account users: %w", err)
	}
	defer rows.Close()

	users := []*domain.AccountUser{}
	for rows.Next() {
		user := &domain.AccountUser{}
		err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.FullName,
			&user.Gender,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account users: %w", err)
	}

	return users, nil
}

// FindByID retrieves an account user by ID using parameterized queries
func (r *accountUserRepository) FindByID(ctx context.Context, id int64) (*domain.AccountUser, error) {
	return r.findBy(ctx, "id = $1", id)
}

// FindByEmail retrieves an account user by email using parameterized queries
func (r *accountUserRepository) FindByEmail(ctx context.Context, email string) (*domain.AccountUser, error) {
	return r.findBy(ctx, "email = $1", email)
}

func (r *accountUserRepository) findBy(ctx context.Context, where string, arg interface{}) (*domain.AccountUser, error) {
	query := `
		SELECT id, first_name, last_name, full_name, gender, email, password, created_at
		FROM app_users
		WHERE ` + where

	user := &domain.AccountUser{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.FullName,
		&user.Gender,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find account user: %w", err)
	}

	return user, nil
}

// Update persists profile fields of an existing account user. The
// password hash is updated separately through UpdatePassword.
func (r *accountUserRepository) Update(ctx context.Context, user *domain.AccountUser) error {
	query := `
		UPDATE app_users
		SET first_name = $2, last_name = $3, full_name = $4, gender = $5, email = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, user.ID, user.FirstName, user.LastName, user.FullName, user.Gender, user.Email)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("failed to update account user: %w", err)
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

// UpdatePassword replaces the stored credential hash.
func (r *accountUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE app_users SET password = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
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

// Delete removes an account user.
func (r *accountUserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM app_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account user: %w", err)
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
