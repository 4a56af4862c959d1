// Package handlers exposes the HTTP surface under /api/v1
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vocabulearn/backend/internal/apperrors"
	"go.uber.org/zap"
)

// ErrorResponse is the error payload returned by every endpoint
type ErrorResponse struct {
	Detail []apperrors.Error `json:"detail"`
}

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response with a single detail entry
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, typ, loc, msg string) {
	h.RespondJSON(w, status, ErrorResponse{
		Detail: []apperrors.Error{{Type: typ, Loc: loc, Msg: msg}},
	})
}

// RespondServiceError translates a service error into an HTTP response.
// Classified errors map kind to status; everything else is a logged 500.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	appErr := apperrors.As(err)
	if appErr == nil {
		h.Logger.Error("unexpected service error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal", "server", "internal server error")
		return
	}

	h.RespondJSON(w, statusForKind(appErr.Kind), ErrorResponse{Detail: []apperrors.Error{*appErr}})
}

// statusForKind maps error kinds to statuses. Uniqueness conflicts come
// back as 422 and malformed bodies as 400, matching the payload contract.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusUnprocessableEntity
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindMalformed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
