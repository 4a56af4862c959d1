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

// TopicService is the interface that wraps methods for topic business logic
type TopicService interface {
	// Create adds a topic owned by the calling user
	Create(ctx context.Context, identity auth.Identity, req *models.TopicRequest) (*models.Topic, error)
	// Get retrieves a topic by ID
	Get(ctx context.Context, id int) (*models.Topic, error)
	// List retrieves all topics
	List(ctx context.Context) ([]models.Topic, error)
	// ListForUser retrieves the topics owned by the calling user
	ListForUser(ctx context.Context, identity auth.Identity) ([]models.Topic, error)
	// Update applies a partial update to a topic owned by the caller
	Update(ctx context.Context, identity auth.Identity, id int, patch *models.TopicPatch) (*models.Topic, error)
	// Delete removes a topic owned by the caller together with its words
	Delete(ctx context.Context, identity auth.Identity, id int) error
}

// TopicHandler handles topic HTTP requests
type TopicHandler struct {
	BaseHandler
	service TopicService
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(service TopicService, logger *zap.Logger) *TopicHandler {
	return &TopicHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all topic handler routes
func (h *TopicHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/topic", h.List)
	r.Get("/topic/{topicID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/topic", h.Create)
		r.Get("/topic/my", h.ListMy)
		r.Patch("/topic/{topicID}", h.Update)
		r.Delete("/topic/{topicID}", h.Delete)
	})
}

// Create handles POST /api/v1/topic
// @Summary Create topic
// @Description Create a topic owned by the authenticated user. Topic names are unique per owner.
// @Tags topics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param topic body models.TopicRequest true "Topic data"
// @Success 201 {object} models.Topic "Created topic"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Language not found"
// @Failure 422 {object} ErrorResponse "Topic name already used by this user"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/topic [post]
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	var req models.TopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	topic, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, topic)
}

// Get handles GET /api/v1/topic/{topicID}
// @Summary Get topic
// @Description Get a single topic by ID
// @Tags topics
// @Produce json
// @Param topicID path int true "Topic ID"
// @Success 200 {object} models.Topic "Topic"
// @Failure 404 {object} ErrorResponse "Topic not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/topic/{topicID} [get]
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	topicID, err := strconv.Atoi(chi.URLParam(r, "topicID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "path", "invalid topic id")
		return
	}

	topic, err := h.service.Get(r.Context(), topicID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, topic)
}

// List handles GET /api/v1/topic
// @Summary List topics
// @Description Get all topics
// @Tags topics
// @Produce json
// @Success 200 {array} models.Topic "List of topics"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/topic [get]
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, topics)
}

// ListMy handles GET /api/v1/topic/my
// @Summary List my topics
// @Description Get the topics owned by the authenticated user
// @Tags topics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Topic "List of owned topics"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/topic/my [get]
func (h *TopicHandler) ListMy(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
		return
	}

	topics, err := h.service.ListForUser(r.Context(), identity)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, topics)
}

// Update handles PATCH /api/v1/topic/{topicID}
// @Summary Update topic
// @Description Partially update a topic. Only the owner may update it.
// @Tags topics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param topicID path int true "Topic ID"
// @Param patch body models.TopicPatch true "Fields to update"
// @Success 200 {object} models.Topic "Updated topic"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not the topic owner"
// @Failure 404 {object} ErrorResponse "Topic or language not found"
// @Failure 422 {object} ErrorResponse "Topic name already used by this user"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/topic/{topicID} [patch]
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var patch models.TopicPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.RespondError(w, http.StatusBadRequest, "malformed", "body", "invalid request body")
		return
	}

	topic, err := h.service.Update(r.Context(), identity, topicID, &patch)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, topic)
}

// Delete handles DELETE /api/v1/topic/{topicID}
// @Summary Delete topic
// @Description Delete a topic together with every word linked through it. Only the owner may delete it.
// @Tags topics
// @Security ApiKeyAuth
// @Param topicID path int true "Topic ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Not the topic owner"
// @Failure 404 {object} ErrorResponse "Topic not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/topic/{topicID} [delete]
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Delete(r.Context(), identity, topicID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
