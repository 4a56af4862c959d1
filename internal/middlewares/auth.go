package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/vocabulearn/backend/internal/auth"
)

const identityKey contextKey = "identity"

// AuthMiddleware validates the bearer access token and puts the
// authenticated identity into the request context
func AuthMiddleware(tokenGenerator *auth.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			var token string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			// If no token found, return 401
			if token == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "header", "authentication required")
				return
			}

			// Validate token and extract the identity
			identity, err := tokenGenerator.ValidateAccessToken(token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "header", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated identity from context
func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
