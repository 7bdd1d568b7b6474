package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"huddle/internal/apperr"
	"huddle/internal/models"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// RequireAuth extracts and verifies the bearer token before any handler
// logic runs. Missing or malformed headers are a 401, same as bad tokens.
func RequireAuth(codec *Codec) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const p = "Bearer "
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, p) {
				models.WriteError(w, apperr.Unauthorized("missing or invalid Authorization header"))
				return
			}
			claims, err := codec.Verify(strings.TrimPrefix(header, p))
			if err != nil {
				models.WriteError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the verified claims stored by RequireAuth.
func ClaimsFrom(r *http.Request) (*Claims, bool) {
	c, ok := r.Context().Value(claimsKey).(*Claims)
	return c, ok
}
