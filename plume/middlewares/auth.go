// plume/middlewares/auth.go
package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"plume/plume/auth"
	"plume/plume/config"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware extracts the bearer token, verifies it, and attaches the
// decoded identity to the request context. Requests without a credential are
// rejected before any other processing.
func AuthMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Acceso denegado")
				return
			}
			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := auth.Verify(tokenStr, []byte(cfg.JWTSecret))
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the decoded token claims attached by AuthMiddleware.
func Identity(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*auth.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
