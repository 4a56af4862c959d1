package middlewares

import (
	"encoding/json"
	"net/http"

	"github.com/vocabulearn/backend/internal/apperrors"
)

// errorBody mirrors the handlers' error payload so middleware rejections
// look the same to clients as service errors
type errorBody struct {
	Detail []apperrors.Error `json:"detail"`
}

func respondError(w http.ResponseWriter, status int, typ, loc, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{
		Detail: []apperrors.Error{{Type: typ, Loc: loc, Msg: msg}},
	})
}
