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

// WordService is the interface that wraps methods for vocabulary business logic
type WordService interface {
	// CreateInTopic adds a word to a topic owned by the caller
	CreateInTopic(ctx context.Context, identity auth.Identity, topicID int, req *models.WordRequest) (*models.Word, error)
	// Link associates an existing word with another topic owned by the caller
	Link(ctx context.Context, identity auth.Identity, topicID, wordID int) error
	// Get retrieves a word by ID
	Get(ctx context.Context, id int) (*models.Word, error)
	// List retrieves all words
	List(ctx context.Context) ([]models.Word, error)
	// ListForTopic retrieves the words linked to a topic owned by the caller
	ListForTopic(ctx context.Context, identity auth.Identity, topicID int) ([]models.Word, error)
	// Update applies a partial update to a word linked to the caller's topics
	Update(ctx context.Context, identity auth.Identity, id int, patch *models.WordPatch) (*models.Word, error)
	// Delete removes a word from every topic it is linked to
	Delete(ctx context.Context, identity auth.Identity, id int) error
}

// WordHandler handles vocabulary HTTP requests
type WordHandler struct {
	BaseHandler
	service WordService
}

// NewWordHandler creates a new word handler
func NewWordHandler(service WordService, logger *zap.Logger) *WordHandler {
	return &WordHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all word handler routes
func (h *WordHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/word", h.List)
	r.Get("/word/{wordID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/topic/{topicID}/word", h.CreateInTopic)
		r.Get("/topic/{topicID}/word", h.ListForTopic)
		r.Put("/topic/{topicID}/word/{wordID}", h.Link)
		r.Patch("/word/{wordID}", h.Update)
		r.Delete("/word/{wordID}", h.Delete)
	})
}

// CreateInTopic handles POST /api/v1/topic/{topicID}/word
// @Summary Create word in topic
// @Description Add a new word to a topic. Only the topic owner may add words, and a learnt word may appear only once within a topic.
// @Tags words
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param topicID path int true "Topic ID"
// @Param word body models.WordRequest true "Word data"
// @Success 201 {object} models.Word "Created word"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not the topic owner"
// @Failure 404 {object} ErrorResponse "Topic not found"
// @Failure 422 {object} ErrorResponse "Word already present in the topic"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/topic/{topicID}/word [post]
func (h *WordHandler) CreateInTopic(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	topicID, err := strconv.Atoi(chi.URLParam(r, "topicID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid topic id")
		return
	}

	var req models.WordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	word, err := h.service.CreateInTopic(r.Context(), identity, topicID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, word)
}

// Link handles PUT /api/v1/topic/{topicID}/word/{wordID}
// @Summary Link word to topic
// @Description Associate an existing word with another topic owned by the caller
// @Tags words
// @Security ApiKeyAuth
// @Param topicID path int true "Topic ID"
// @Param wordID path int true "Word ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not the topic owner"
// @Failure 404 {object} ErrorResponse "Topic or word not found"
// @Failure 422 {object} ErrorResponse "Word already linked to the topic"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/topic/{topicID}/word/{wordID} [put]
func (h *WordHandler) Link(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	topicID, err := strconv.Atoi(chi.URLParam(r, "topicID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid topic id")
		return
	}
	wordID, err := strconv.Atoi(chi.URLParam(r, "wordID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid word id")
		return
	}

	if err := h.service.Link(r.Context(), identity, topicID, wordID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /api/v1/word/{wordID}
// @Summary Get word
// @Description Get a single word by ID
// @Tags words
// @Produce json
// @Param wordID path int true "Word ID"
// @Success 200 {object} models.Word "Word"
// @Failure 404 {object} ErrorResponse "Word not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/word/{wordID} [get]
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	wordID, err := strconv.Atoi(chi.URLParam(r, "wordID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid word id")
		return
	}

	word, err := h.service.Get(r.Context(), wordID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, word)
}

// List handles GET /api/v1/word
// @Summary List words
// @Description Get all words
// @Tags words
// @Produce json
// @Success 200 {array} models.Word "List of words"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/word [get]
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	words, err := h.service.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, words)
}

// ListForTopic handles GET /api/v1/topic/{topicID}/word
// @Summary List topic words
// @Description Get the words linked to a topic. Only the topic owner may list them.
// @Tags words
// @Produce json
// @Security ApiKeyAuth
// @Param topicID path int true "Topic ID"
// @Success 200 {array} models.Word "Words linked to the topic"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not the topic owner"
// @Failure 404 {object} ErrorResponse "Topic not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/topic/{topicID}/word [get]
func (h *WordHandler) ListForTopic(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	topicID, err := strconv.Atoi(chi.URLParam(r, "topicID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid topic id")
		return
	}

	words, err := h.service.ListForTopic(r.Context(), identity, topicID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, words)
}

// Update handles PATCH /api/v1/word/{wordID}
// @Summary Update word
// @Description Partially update a word. The caller must own a topic the word is linked to. Renaming is refused when it would collide in any linked topic.
// @Tags words
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param wordID path int true "Word ID"
// @Param patch body models.WordPatch true "Fields to update"
// @Success 200 {object} models.Word "Updated word"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Word not in caller's topics"
// @Failure 404 {object} ErrorResponse "Word not found"
// @Failure 422 {object} ErrorResponse "Spelling collides in a linked topic"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/word/{wordID} [patch]
func (h *WordHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	wordID, err := strconv.Atoi(chi.URLParam(r, "wordID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid word id")
		return
	}

	var patch models.WordPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	word, err := h.service.Update(r.Context(), identity, wordID, &patch)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, word)
}

// Delete handles DELETE /api/v1/word/{wordID}
// @Summary Delete word
// @Description Delete a word and remove it from every topic it is linked to. The caller must own a topic the word is linked to.
// @Tags words
// @Security ApiKeyAuth
// @Param wordID path int true "Word ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Word not in caller's topics"
// @Failure 404 {object} ErrorResponse "Word not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/word/{wordID} [delete]
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	wordID, err := strconv.Atoi(chi.URLParam(r, "wordID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid word id")
		return
	}

	if err := h.service.Delete(r.Context(), identity, wordID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
