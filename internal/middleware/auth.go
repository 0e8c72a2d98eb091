// Package middleware provides HTTP middlewares for authentication,
// request logging and CORS.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/IsaacFdezPintor/studiosnap/internal/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

const bearerPrefix = "Bearer "

// TokenVerifier decodes and validates a bearer credential, returning
// the identity it encodes.
type TokenVerifier interface {
	Verify(tokenString string) (*models.Identity, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It requires an "Authorization: Bearer <token>" header and rejects
// the request with 401 when the header is missing, malformed, or the
// token fails verification (bad signature or expired). On success the
// decoded identity is stored in the request context for downstream
// handlers.
func BearerAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				unauthorized(w, "token required")
				return
			}

			identity, err := tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity placed in
// the context by BearerAuth. ok is false if the request never passed
// the middleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the given identity. Intended
// for tests that exercise protected handlers directly.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
