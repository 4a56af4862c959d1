package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Register creates a new user account
	//
	// "req" parameter carries the username, email and plain password.
	//
	// If validation fails or the username/email is taken, the error will be returned together with "nil" value.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Login authenticates a user by username or email and returns a token pair
	//
	// Unknown user and wrong password produce the same Unauthorized error.
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPair, error)
	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// AuthHandler handles registration, login and token refresh HTTP requests
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/user", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.Refresh)
}

// Register handles POST /api/v1/auth/user
// @Summary Register a new user
// @Description Create a new user account with username, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.User "Created user"
// @Failure 422 {object} ErrorResponse "Username or email already taken"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/user [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Authenticate with username or email plus password and receive a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} models.TokenPair "Access and refresh tokens"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	tokens, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tokens)
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /api/v1/auth/refresh
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} models.TokenPair "New access and refresh tokens"
// @Failure 401 {object} ErrorResponse "Invalid or expired refresh token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tokens)
}
