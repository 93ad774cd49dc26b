package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"nova-commerce/internal/config"
	"nova-commerce/internal/domain"
	"nova-commerce/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AuthService verifies credentials and issues bearer tokens for the
// admin panel and the customer-facing app.
type AuthService interface {
	AdminLogin(username, password string) (string, error)
	Register(ctx context.Context, input RegisterInput) (string, *domain.AccountUser, error)
	Login(ctx context.Context, email, password string) (string, *domain.AccountUser, error)
	GetProfile(ctx context.Context, userID int64) (*domain.AccountUser, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword, confirmPassword string) error
	UpdateProfile(ctx context.Context, userID int64, fullName, email string) (*domain.AccountUser, error)
}

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Gender          string
	Email           string
	Password        string
	ConfirmPassword string
}

type authService struct {
	accountUsers repository.AccountUserRepository
	adminCfg     config.AdminConfig
	jwtCfg       config.JWTConfig
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(accountUsers repository.AccountUserRepository, adminCfg config.AdminConfig, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		accountUsers: accountUsers,
		adminCfg:     adminCfg,
		jwtCfg:       jwtCfg,
	}
}

// AdminLogin compares the supplied pair against the configured admin
// credentials in constant time and issues a 24h admin token. The error
// never reveals which field was wrong.
func (s *authService) AdminLogin(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminCfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminCfg.Password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidAdminCredentials
	}

	claims := jwt.MapClaims{
		"username": username,
		"role":     RoleAdmin,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Duration(s.jwtCfg.AdminExpiry) * time.Hour).Unix(),
	}

	return s.sign(claims)
}

// Register creates a new account user with a hashed credential and
// issues a 30-day user token.
func (s *authService) Register(ctx context.Context, input RegisterInput) (string, *domain.AccountUser, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" ||
		input.Password == "" || input.ConfirmPassword == "" {
		return "", nil, NewValidationError("all fields are required")
	}
	if input.Password != input.ConfirmPassword {
		return "", nil, ErrPasswordsDoNotMatch
	}
	if err := ValidatePassword(input.Password); err != nil {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), BcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.AccountUser{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		FullName:     input.FirstName + " " + input.LastName,
		Gender:       input.Gender,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	if err := s.accountUsers.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.userToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Login authenticates an account user. Unknown email and wrong password
// produce the same generic error.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.AccountUser, error) {
	if email == "" || password == "" {
		return "", nil, NewValidationError("email and password are required")
	}

	user, err := s.accountUsers.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.userToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// GetProfile retrieves the authenticated account user.
func (s *authService) GetProfile(ctx context.Context, userID int64) (*domain.AccountUser, error) {
	return s.accountUsers.FindByID(ctx, userID)
}

// ChangePassword re-verifies the current credential before accepting a
// new one and re-applies the strength policy.
func (s *authService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword, confirmPassword string) error {
	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return NewValidationError("all password fields are required")
	}
	if newPassword != confirmPassword {
		return ErrPasswordsDoNotMatch
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.accountUsers.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrCurrentPasswordIncorrect
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.accountUsers.UpdatePassword(ctx, userID, string(hash))
}

// UpdateProfile replaces the full name and email of the authenticated
// account user.
func (s *authService) UpdateProfile(ctx context.Context, userID int64, fullName, email string) (*domain.AccountUser, error) {
	if fullName == "" || email == "" {
		return nil, NewValidationError("full name and email are required")
	}

	user, err := s.accountUsers.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	first, last := SplitFullName(fullName)
	user.FirstName = first
	user.LastName = last
	user.FullName = fullName
	user.Email = email

	if err := s.accountUsers.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) userToken(user *domain.AccountUser) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    RoleUser,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Duration(s.jwtCfg.UserExpiry) * 24 * time.Hour).Unix(),
	}
	return s.sign(claims)
}

func (s *authService) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// SplitFullName splits a full name into first and last parts on
// whitespace; everything after the first word becomes the last name.
func SplitFullName(fullName string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
