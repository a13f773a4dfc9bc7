// Package auth extracts the authenticated principal supplied by the upstream
// auth gateway. Identity is trusted; everything else the client declares is
// re-validated by the access policy gate.
package auth

import (
	"context"
	"net/http"

	"media-vault/internal/core/domain"

	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// Middleware reads the X-User-ID and X-User-Role identity headers and stores
// the principal on the request context. Requests without a valid identity
// are rejected with 401.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
			if err != nil {
				http.Error(w, "missing or invalid identity", http.StatusUnauthorized)
				return
			}

			role, ok := domain.ParseRole(r.Header.Get("X-User-Role"))
			if !ok {
				http.Error(w, "missing or invalid role", http.StatusUnauthorized)
				return
			}

			principal := domain.Principal{ID: userID, Role: role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, principal)))
		})
	}
}

// PrincipalFromContext returns the principal stored by Middleware
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}
