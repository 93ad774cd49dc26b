package service

import (
	"context"
	"fmt"
	"sort"

	"nova-commerce/internal/domain"
	"nova-commerce/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService serves the admin user directory: the two user variants
// unified at the API boundary. By-id operations resolve account users
// first, then directory users.
type UserService interface {
	List(ctx context.Context) ([]*domain.UnifiedUser, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.UnifiedUser, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.UnifiedUser, error)
	Delete(ctx context.Context, id int64) error
}

// CreateUserInput carries the admin "new user" form. Admin-created users
// land in the account-user space so they can sign in, which is why a
// password is required.
type CreateUserInput struct {
	FullName string
	Email    string
	Password string
}

// UpdateUserInput carries the admin user edit form. Nil means the field
// was omitted and keeps its existing value.
type UpdateUserInput struct {
	FullName  *string
	Email     *string
	Gender    *string
	Phone     *string
	AvatarURL *string
	Notes     *string
	Password  *string
}

type userService struct {
	accountUsers   repository.AccountUserRepository
	directoryUsers repository.DirectoryUserRepository
	orders         repository.OrderRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(
	accountUsers repository.AccountUserRepository,
	directoryUsers repository.DirectoryUserRepository,
	orders repository.OrderRepository,
) UserService {
	return &userService{
		accountUsers:   accountUsers,
		directoryUsers: directoryUsers,
		orders:         orders,
	}
}

// List merges both user variants, tagged with their source, newest first.
func (s *userService) List(ctx context.Context) ([]*domain.UnifiedUser, error) {
	accounts, err := s.accountUsers.List(ctx)
	if err != nil {
		return nil, err
	}
	contacts, err := s.directoryUsers.List(ctx)
	if err != nil {
		return nil, err
	}

	unified := make([]*domain.UnifiedUser, 0, len(accounts)+len(contacts))
	for _, u := range accounts {
		unified = append(unified, unifyAccountUser(u))
	}
	for _, u := range contacts {
		unified = append(unified, unifyDirectoryUser(u))
	}

	sort.SliceStable(unified, func(i, j int) bool {
		return unified[i].CreatedAt.After(unified[j].CreatedAt)
	})

	return unified, nil
}

// Create stores an admin-entered user as an account user with a hashed
// credential.
func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.UnifiedUser, error) {
	if input.FullName == "" || input.Email == "" {
		return nil, NewValidationError("full name and email are required")
	}
	if input.Password == "" {
		return nil, NewValidationError("password is required")
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	first, last := SplitFullName(input.FullName)
	user := &domain.AccountUser{
		FirstName:    first,
		LastName:     last,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	if err := s.accountUsers.Create(ctx, user); err != nil {
		return nil, err
	}

	unified := unifyAccountUser(user)
	unified.Source = domain.UserSourceAdmin
	return unified, nil
}

// Update edits whichever variant owns the id, account users first. A
// supplied password is policy-checked and re-hashed; directory users
// have no credential so a password is ignored for them.
func (s *userService) Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.UnifiedUser, error) {
	if input.Password != nil && *input.Password != "" {
		if err := ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
	}

	account, err := s.accountUsers.FindByID(ctx, id)
	if err == nil {
		return s.updateAccountUser(ctx, account, input)
	}
	if err != repository.ErrUserNotFound {
		return nil, err
	}

	contact, err := s.directoryUsers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.updateDirectoryUser(ctx, contact, input)
}

func (s *userService) updateAccountUser(ctx context.Context, user *domain.AccountUser, input UpdateUserInput) (*domain.UnifiedUser, error) {
	if input.FullName != nil && *input.FullName != "" {
		first, last := SplitFullName(*input.FullName)
		user.FirstName = first
		user.LastName = last
		user.FullName = *input.FullName
	}
	if input.Email != nil && *input.Email != "" {
		user.Email = *input.Email
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}

	if err := s.accountUsers.Update(ctx, user); err != nil {
		return nil, err
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.accountUsers.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return nil, err
		}
	}

	return unifyAccountUser(user), nil
}

func (s *userService) updateDirectoryUser(ctx context.Context, user *domain.DirectoryUser, input UpdateUserInput) (*domain.UnifiedUser, error) {
	if input.FullName != nil && *input.FullName != "" {
		user.FullName = *input.FullName
	}
	if input.Email != nil && *input.Email != "" {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	if input.Notes != nil {
		user.Notes = input.Notes
	}

	if err := s.directoryUsers.Update(ctx, user); err != nil {
		return nil, err
	}

	return unifyDirectoryUser(user), nil
}

// Delete removes whichever variant owns the id, along with the orders
// recorded under the customer's name (and phone, when known).
func (s *userService) Delete(ctx context.Context, id int64) error {
	account, err := s.accountUsers.FindByID(ctx, id)
	if err == nil {
		if err := s.orders.DeleteByCustomer(ctx, account.FullName, nil); err != nil {
			return err
		}
		return s.accountUsers.Delete(ctx, id)
	}
	if err != repository.ErrUserNotFound {
		return err
	}

	contact, err := s.directoryUsers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orders.DeleteByCustomer(ctx, contact.FullName, contact.Phone); err != nil {
		return err
	}
	return s.directoryUsers.Delete(ctx, id)
}

func unifyAccountUser(u *domain.AccountUser) *domain.UnifiedUser {
	return &domain.UnifiedUser{
		ID:        u.ID,
		FullName:  u.FullName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Gender:    u.Gender,
		Email:     u.Email,
		Source:    domain.UserSourceApp,
		CreatedAt: u.CreatedAt,
	}
}

func unifyDirectoryUser(u *domain.DirectoryUser) *domain.UnifiedUser {
	return &domain.UnifiedUser{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		Notes:     u.Notes,
		Source:    domain.UserSourceAdmin,
		CreatedAt: u.CreatedAt,
	}
}
