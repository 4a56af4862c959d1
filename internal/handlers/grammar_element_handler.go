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

// GrammarElementService is the interface that wraps methods for grammar category business logic
type GrammarElementService interface {
	// Create adds a new grammar element to the catalog
	Create(ctx context.Context, req *models.GrammarElementRequest) (*models.GrammarElement, error)
	// Get retrieves a grammar element by ID
	Get(ctx context.Context, id int) (*models.GrammarElement, error)
	// List retrieves all grammar elements
	List(ctx context.Context) ([]models.GrammarElement, error)
	// Update renames a grammar element
	Update(ctx context.Context, id int, patch *models.GrammarElementPatch) (*models.GrammarElement, error)
	// Delete removes a grammar element; refused while referenced
	Delete(ctx context.Context, id int) error
}

// GrammarElementHandler handles grammar category HTTP requests
type GrammarElementHandler struct {
	BaseHandler
	service GrammarElementService
}

// NewGrammarElementHandler creates a new grammar element handler
func NewGrammarElementHandler(service GrammarElementService, logger *zap.Logger) *GrammarElementHandler {
	return &GrammarElementHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all grammar element handler routes
func (h *GrammarElementHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/grammar-element", h.List)
	r.Get("/grammar-element/{grammarElementID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/grammar-element", h.Create)
		r.Patch("/grammar-element/{grammarElementID}", h.Update)
		r.Delete("/grammar-element/{grammarElementID}", h.Delete)
	})
}

// Create handles POST /api/v1/grammar-element
// @Summary Create grammar element
// @Description Add a new grammatical category such as noun or verb
// @Tags grammar-elements
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param element body models.GrammarElementRequest true "Grammar element data"
// @Success 201 {object} models.GrammarElement "Created grammar element"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 422 {object} ErrorResponse "Grammar element already exists"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/grammar-element [post]
func (h *GrammarElementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.GrammarElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	element, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, element)
}

// Get handles GET /api/v1/grammar-element/{grammarElementID}
// @Summary Get grammar element
// @Description Get a single grammar element by ID
// @Tags grammar-elements
// @Produce json
// @Param grammarElementID path int true "Grammar element ID"
// @Success 200 {object} models.GrammarElement "Grammar element"
// @Failure 404 {object} ErrorResponse "Grammar element not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/grammar-element/{grammarElementID} [get]
func (h *GrammarElementHandler) Get(w http.ResponseWriter, r *http.Request) {
	grammarElementID, err := strconv.Atoi(chi.URLParam(r, "grammarElementID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid grammar element id")
		return
	}

	element, err := h.service.Get(r.Context(), grammarElementID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, element)
}

// List handles GET /api/v1/grammar-element
// @Summary List grammar elements
// @Description Get all grammar elements in the catalog
// @Tags grammar-elements
// @Produce json
// @Success 200 {array} models.GrammarElement "List of grammar elements"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/grammar-element [get]
func (h *GrammarElementHandler) List(w http.ResponseWriter, r *http.Request) {
	elements, err := h.service.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, elements)
}

// Update handles PATCH /api/v1/grammar-element/{grammarElementID}
// @Summary Update grammar element
// @Description Rename a grammar element
// @Tags grammar-elements
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param grammarElementID path int true "Grammar element ID"
// @Param patch body models.GrammarElementPatch true "Fields to update"
// @Success 200 {object} models.GrammarElement "Updated grammar element"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Grammar element not found"
// @Failure 422 {object} ErrorResponse "Grammar element name already exists"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/grammar-element/{grammarElementID} [patch]
func (h *GrammarElementHandler) Update(w http.ResponseWriter, r *http.Request) {
	grammarElementID, err := strconv.Atoi(chi.URLParam(r, "grammarElementID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid grammar element id")
		return
	}

	var patch models.GrammarElementPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	element, err := h.service.Update(r.Context(), grammarElementID, &patch)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, element)
}

// Delete handles DELETE /api/v1/grammar-element/{grammarElementID}
// @Summary Delete grammar element
// @Description Delete a grammar element. Refused while words still reference it.
// @Tags grammar-elements
// @Security ApiKeyAuth
// @Param grammarElementID path int true "Grammar element ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Grammar element not found"
// @Failure 422 {object} ErrorResponse "Grammar element still referenced"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/grammar-element/{grammarElementID} [delete]
func (h *GrammarElementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	grammarElementID, err := strconv.Atoi(chi.URLParam(r, "grammarElementID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid grammar element id")
		return
	}

	if err := h.service.Delete(r.Context(), grammarElementID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
