package repository

import (
	"context"
	"testing"

	"nova-commerce/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccountUser(email string) *domain.AccountUser {
	return &domain.AccountUser{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		FullName:     "Ada Lovelace",
		Gender:       "female",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
	}
}

func TestAccountUserCreateAndFind(t *testing.T) {
	repo := NewAccountUserRepository(testDB)
	ctx := context.Background()

	user := testAccountUser("ada@example.com")
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)
	require.False(t, user.CreatedAt.IsZero())
	defer repo.Delete(ctx, user.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)
	assert.Equal(t, user.PasswordHash, byID.PasswordHash)

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAccountUserDuplicateEmail(t *testing.T) {
	repo := NewAccountUserRepository(testDB)
	ctx := context.Background()

	user := testAccountUser("dup@example.com")
	require.NoError(t, repo.Create(ctx, user))
	defer repo.Delete(ctx, user.ID)

	err := repo.Create(ctx, testAccountUser("dup@example.com"))
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestAccountUserUpdateLeavesPasswordAlone(t *testing.T) {
	repo := NewAccountUserRepository(testDB)
	ctx := context.Background()

	user := testAccountUser("update@example.com")
	require.NoError(t, repo.Create(ctx, user))
	defer repo.Delete(ctx, user.ID)

	user.FullName = "Ada Byron"
	user.FirstName = "Ada"
	user.LastName = "Byron"
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Byron", stored.FullName)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)
}

func TestAccountUserUpdatePassword(t *testing.T) {
	repo := NewAccountUserRepository(testDB)
	ctx := context.Background()

	user := testAccountUser("rotate@example.com")
	require.NoError(t, repo.Create(ctx, user))
	defer repo.Delete(ctx, user.ID)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", stored.PasswordHash)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, 999999, "x"), ErrUserNotFound)
}

func TestDirectoryUserRepository(t *testing.T) {
	repo := NewDirectoryUserRepository(testDB)
	ctx := context.Background()

	phone := "+36301234567"
	var id int64
	err := testDB.QueryRowContext(ctx, `
		INSERT INTO users (full_name, email, phone)
		VALUES ('Walk-in Customer', 'walkin@example.com', $1)
		RETURNING id
	`, phone).Scan(&id)
	require.NoError(t, err)
	defer repo.Delete(ctx, id)

	stored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", stored.FullName)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, phone, *stored.Phone)

	notes := "prefers phone contact"
	stored.Notes = &notes
	require.NoError(t, repo.Update(ctx, stored))

	updated, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
