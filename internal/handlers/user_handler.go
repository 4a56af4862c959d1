package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vocabulearn/backend/internal/auth"
	"github.com/vocabulearn/backend/internal/middlewares"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for user management business logic
type UserService interface {
	// Get retrieves a single user by ID
	Get(ctx context.Context, userID int) (*models.User, error)
	// List retrieves all users
	List(ctx context.Context) ([]models.User, error)
	// Update applies a partial update; only the owner or a superuser may call it
	Update(ctx context.Context, identity auth.Identity, targetID int, patch *models.UserPatch) (*models.User, error)
	// Delete removes a user account; refused while the user still owns topics
	Delete(ctx context.Context, identity auth.Identity, targetID int) error
	// AddLanguage links a language the calling user is learning
	AddLanguage(ctx context.Context, identity auth.Identity, languageID int) error
	// RemoveLanguage unlinks a language from the calling user
	RemoveLanguage(ctx context.Context, identity auth.Identity, languageID int) error
	// Languages lists the languages linked to the calling user
	Languages(ctx context.Context, identity auth.Identity) ([]models.Language, error)
}

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all user handler routes
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/auth/user", h.List)
	r.Get("/auth/user/{userID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Patch("/auth/user/{userID}", h.Update)
		r.Delete("/auth/user/{userID}", h.Delete)
		r.Get("/auth/user/languages", h.Languages)
		r.Post("/auth/user/languages/{languageID}", h.AddLanguage)
		r.Delete("/auth/user/languages/{languageID}", h.RemoveLanguage)
	})
}

// Get handles GET /api/v1/auth/user/{userID}
// @Summary Get user
// @Description Get a single user by ID
// @Tags users
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} models.User "User"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/user/{userID} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid user id")
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// List handles GET /api/v1/auth/user
// @Summary List users
// @Description Get all registered users
// @Tags users
// @Produce json
// @Success 200 {array} models.User "List of users"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/user [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// Update handles PATCH /api/v1/auth/user/{userID}
// @Summary Update user
// @Description Partially update a user account. Only the account owner or a superuser may update it.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userID path int true "User ID"
// @Param patch body models.UserPatch true "Fields to update"
// @Success 200 {object} models.User "Updated user"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not the account owner"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 422 {object} ErrorResponse "Username or email already taken"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/user/{userID} [patch]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid user id")
		return
	}

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	user, err := h.service.Update(r.Context(), identity, userID, &patch)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/v1/auth/user/{userID}
// @Summary Delete user
// @Description Delete a user account. Refused while the user still owns topics.
// @Tags users
// @Security ApiKeyAuth
// @Param userID path int true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not the account owner"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 422 {object} ErrorResponse "User still owns topics"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/user/{userID} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid user id")
		return
	}

	if err := h.service.Delete(r.Context(), identity, userID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Languages handles GET /api/v1/auth/user/languages
// @Summary List learning languages
// @Description Get the languages linked to the authenticated user
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Language "Linked languages"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/user/languages [get]
func (h *UserHandler) Languages(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	languages, err := h.service.Languages(r.Context(), identity)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, languages)
}

// AddLanguage handles POST /api/v1/auth/user/languages/{languageID}
// @Summary Add learning language
// @Description Link a language the authenticated user is learning
// @Tags users
// @Security ApiKeyAuth
// @Param languageID path int true "Language ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Language not found"
// @Failure 422 {object} ErrorResponse "Language already linked"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/user/languages/{languageID} [post]
func (h *UserHandler) AddLanguage(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	languageID, err := strconv.Atoi(chi.URLParam(r, "languageID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid language id")
		return
	}

	if err := h.service.AddLanguage(r.Context(), identity, languageID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveLanguage handles DELETE /api/v1/auth/user/languages/{languageID}
// @Summary Remove learning language
// @Description Unlink a language from the authenticated user
// @Tags users
// @Security ApiKeyAuth
// @Param languageID path int true "Language ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Language not linked"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/user/languages/{languageID} [delete]
func (h *UserHandler) RemoveLanguage(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	languageID, err := strconv.Atoi(chi.URLParam(r, "languageID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid language id")
		return
	}

	if err := h.service.RemoveLanguage(r.Context(), identity, languageID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
