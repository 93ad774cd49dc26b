package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nova-commerce/internal/domain"
	"nova-commerce/internal/middleware"
	"nova-commerce/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAuthService struct {
	adminErr  error
	loginErr  error
	changeErr error
	user      *domain.AccountUser
}

func (m *mockAuthService) AdminLogin(username, password string) (string, error) {
	if m.adminErr != nil {
		return "", m.adminErr
	}
	return "admin-token", nil
}

func (m *mockAuthService) Register(ctx context.Context, input service.RegisterInput) (string, *domain.AccountUser, error) {
	if m.loginErr != nil {
		return "", nil, m.loginErr
	}
	return "user-token", m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.AccountUser, error) {
	if m.loginErr != nil {
		return "", nil, m.loginErr
	}
	return "user-token", m.user, nil
}

func (m *mockAuthService) GetProfile(ctx context.Context, userID int64) (*domain.AccountUser, error) {
	return m.user, nil
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword, confirmPassword string) error {
	return m.changeErr
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, fullName, email string) (*domain.AccountUser, error) {
	return m.user, nil
}

// stubAuth stands in for the JWT middleware and attaches a fixed user id.
func stubAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.UserIDKey, int64(42))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sampleAccountUser() *domain.AccountUser {
	return &domain.AccountUser{
		ID:        42,
		FirstName: "Ada",
		LastName:  "Lovelace",
		FullName:  "Ada Lovelace",
		Email:     "ada@example.com",
		Gender:    "female",
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newAuthTestServer(t *testing.T, svc *mockAuthService) *chi.Mux {
	t.Helper()

	logger, _ := zap.NewDevelopment()
	router := chi.NewRouter()
	NewAuthHandler(svc, logger).RegisterRoutes(router, stubAuth, nil)
	return router
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminLoginEndpoint(t *testing.T) {
	t.Run("valid credentials return a token", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{})

		w := postJSON(t, router, "/api/auth/login", AdminLoginRequest{Username: "admin", Password: "letmein123"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "admin-token", resp.Token)
		assert.Nil(t, resp.User)
	})

	t.Run("bad credentials return 401", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{adminErr: service.ErrInvalidAdminCredentials})

		w := postJSON(t, router, "/api/auth/login", AdminLoginRequest{Username: "admin", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing password is a validation error", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{})

		w := postJSON(t, router, "/api/auth/login", map[string]string{"username": "admin"})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var envelope struct {
			Error struct {
				Details struct {
					ValidationErrors []middleware.ValidationError `json:"validation_errors"`
				} `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
		require.Len(t, envelope.Error.Details.ValidationErrors, 1)
		assert.Equal(t, "Password", envelope.Error.Details.ValidationErrors[0].Field)
	})
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("successful signup returns token and profile", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{user: sampleAccountUser()})

		w := postJSON(t, router, "/api/auth/register", RegisterRequest{
			FirstName:       "Ada",
			LastName:        "Lovelace",
			Email:           "ada@example.com",
			Password:        "Abcdef1!",
			ConfirmPassword: "Abcdef1!",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "user-token", resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "Ada Lovelace", resp.User.FullName)
		assert.Equal(t, "ada@example.com", resp.User.Email)
	})

	t.Run("mismatched passwords return 400", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{loginErr: service.ErrPasswordsDoNotMatch})

		w := postJSON(t, router, "/api/auth/register", RegisterRequest{
			FirstName:       "Ada",
			LastName:        "Lovelace",
			Email:           "ada@example.com",
			Password:        "Abcdef1!",
			ConfirmPassword: "Abcdef2!",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed email is rejected before the service", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{user: sampleAccountUser()})

		w := postJSON(t, router, "/api/auth/register", RegisterRequest{
			FirstName:       "Ada",
			LastName:        "Lovelace",
			Email:           "not-an-email",
			Password:        "Abcdef1!",
			ConfirmPassword: "Abcdef1!",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserLoginEndpoint(t *testing.T) {
	t.Run("valid login returns token and profile", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{user: sampleAccountUser()})

		w := postJSON(t, router, "/api/auth/user-login", UserLoginRequest{Email: "ada@example.com", Password: "Abcdef1!"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotNil(t, resp.User)
		assert.Equal(t, int64(42), resp.User.ID)
	})

	t.Run("unknown account returns 401", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{loginErr: service.ErrInvalidCredentials})

		w := postJSON(t, router, "/api/auth/user-login", UserLoginRequest{Email: "ghost@example.com", Password: "Abcdef1!"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMeEndpoint(t *testing.T) {
	router := newAuthTestServer(t, &mockAuthService{user: sampleAccountUser()})

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var profile UserProfile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "Lovelace", profile.LastName)
	assert.NotEmpty(t, profile.CreatedAt)
}

func TestChangePasswordEndpoint(t *testing.T) {
	t.Run("wrong current password maps to 401", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{changeErr: service.ErrCurrentPasswordIncorrect})

		w := postJSON(t, router, "/api/auth/change-password", ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "Abcdef2!",
			ConfirmPassword: "Abcdef2!",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success responds with a message", func(t *testing.T) {
		router := newAuthTestServer(t, &mockAuthService{})

		w := postJSON(t, router, "/api/auth/change-password", ChangePasswordRequest{
			CurrentPassword: "Abcdef1!",
			NewPassword:     "Abcdef2!",
			ConfirmPassword: "Abcdef2!",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "password changed")
	})
}
