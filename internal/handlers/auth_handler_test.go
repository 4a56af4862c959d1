package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabulearn/backend/internal/apperrors"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	user   *models.User
	tokens *models.TokenPair
	err    error
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPair, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tokens, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tokens, nil
}

func setupAuthRouter(svc AuthService) chi.Router {
	logger, _ := zap.NewDevelopment()
	handler := NewAuthHandler(svc, logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *mockAuthService
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "created",
			body: `{"username":"learner42","email":"learner@example.com","password":"long-enough"}`,
			service: &mockAuthService{
				user: &models.User{ID: 1, Username: "learner42", Email: "learner@example.com"},
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"learner42"`,
		},
		{
			name:           "invalid json",
			body:           `{not json`,
			service:        &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"detail"`,
		},
		{
			name:           "username taken",
			body:           `{"username":"learner42","email":"learner@example.com","password":"long-enough"}`,
			service:        &mockAuthService{err: apperrors.Conflict("username_taken", "username", "user with this username already exists")},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"type":"username_taken"`,
		},
		{
			name:           "validation failure",
			body:           `{"username":"abc","email":"learner@example.com","password":"long-enough"}`,
			service:        &mockAuthService{err: apperrors.Malformed("username", "username must be between 5 and 50 characters long")},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"loc":"username"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupAuthRouter(tt.service)

			req := httptest.NewRequest(http.MethodPost, "/auth/user", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success returns token pair", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthService{
			tokens: &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"login":"learner42","password":"correct"}`))
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"accessToken":"access"`)
		assert.Contains(t, rec.Body.String(), `"refreshToken":"refresh"`)
	})

	t.Run("bad credentials return 401", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthService{err: apperrors.Unauthorized("invalid credentials")})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"login":"learner42","password":"wrong"}`))
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"type":"unauthorized"`)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("expired token returns 401", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthService{err: apperrors.Unauthorized("refresh token is expired")})

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refreshToken":"stale"}`))
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "refresh token is expired")
	})

	t.Run("success returns new pair", func(t *testing.T) {
		r := setupAuthRouter(&mockAuthService{
			tokens: &models.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"},
		})

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refreshToken":"valid"}`))
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"accessToken":"new-access"`)
	})
}
