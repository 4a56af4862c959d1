package middlewares

import (
	"net/http"
)

// RequestSizeLimitMiddleware rejects bodies larger than maxBytes before
// they reach a handler, and caps chunked bodies via MaxBytesReader
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				respondError(w, http.StatusRequestEntityTooLarge, "malformed", "body", "request body is too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
