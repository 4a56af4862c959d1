package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vocabulearn/backend/internal/models"
	"go.uber.org/zap"
)

// LanguageService is the interface that wraps methods for language catalog business logic
type LanguageService interface {
	// Create adds a new language to the catalog
	Create(ctx context.Context, req *models.LanguageRequest) (*models.Language, error)
	// Get retrieves a language by ID
	Get(ctx context.Context, id int) (*models.Language, error)
	// List retrieves all languages
	List(ctx context.Context) ([]models.Language, error)
	// Update renames a language
	Update(ctx context.Context, id int, patch *models.LanguagePatch) (*models.Language, error)
	// Delete removes a language; refused while referenced
	Delete(ctx context.Context, id int) error
}

// LanguageHandler handles language catalog HTTP requests
type LanguageHandler struct {
	BaseHandler
	service LanguageService
}

// NewLanguageHandler creates a new language handler
func NewLanguageHandler(service LanguageService, logger *zap.Logger) *LanguageHandler {
	return &LanguageHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all language handler routes
func (h *LanguageHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/language", h.List)
	r.Get("/language/{languageID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/language", h.Create)
		r.Patch("/language/{languageID}", h.Update)
		r.Delete("/language/{languageID}", h.Delete)
	})
}

// Create handles POST /api/v1/language
// @Summary Create language
// @Description Add a new language to the catalog
// @Tags languages
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param language body models.LanguageRequest true "Language data"
// @Success 201 {object} models.Language "Created language"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 422 {object} ErrorResponse "Language already exists"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/language [post]
func (h *LanguageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.LanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	language, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, language)
}

// Get handles GET /api/v1/language/{languageID}
// @Summary Get language
// @Description Get a single language by ID
// @Tags languages
// @Produce json
// @Param languageID path int true "Language ID"
// @Success 200 {object} models.Language "Language"
// @Failure 404 {object} ErrorResponse "Language not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/language/{languageID} [get]
func (h *LanguageHandler) Get(w http.ResponseWriter, r *http.Request) {
	languageID, err := strconv.Atoi(chi.URLParam(r, "languageID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid language id")
		return
	}

	language, err := h.service.Get(r.Context(), languageID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, language)
}

// List handles GET /api/v1/language
// @Summary List languages
// @Description Get all languages in the catalog
// @Tags languages
// @Produce json
// @Success 200 {array} models.Language "List of languages"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/language [get]
func (h *LanguageHandler) List(w http.ResponseWriter, r *http.Request) {
	languages, err := h.service.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, languages)
}

// Update handles PATCH /api/v1/language/{languageID}
// @Summary Update language
// @Description Rename a language
// @Tags languages
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param languageID path int true "Language ID"
// @Param patch body models.LanguagePatch true "Fields to update"
// @Success 200 {object} models.Language "Updated language"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Language not found"
// @Failure 422 {object} ErrorResponse "Language name already exists"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/language/{languageID} [patch]
func (h *LanguageHandler) Update(w http.ResponseWriter, r *http.Request) {
	languageID, err := strconv.Atoi(chi.URLParam(r, "languageID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid language id")
		return
	}

	var patch models.LanguagePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	language, err := h.service.Update(r.Context(), languageID, &patch)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, language)
}

// Delete handles DELETE /api/v1/language/{languageID}
// @Summary Delete language
// @Description Delete a language. Refused while topics or user links still reference it.
// @Tags languages
// @Security ApiKeyAuth
// @Param languageID path int true "Language ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Language not found"
// @Failure 422 {object} ErrorResponse "Language still referenced"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/language/{languageID} [delete]
func (h *LanguageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	languageID, err := strconv.Atoi(chi.URLParam(r, "languageID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid language id")
		return
	}

	if err := h.service.Delete(r.Context(), languageID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
