package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	authApp "github.com/treloarai/callscreen/internal/auth/app"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const AuthenticatedUserContextKey = ContextKey("authenticatedUser")

// AuthMiddleware authenticates requests with a Bearer JWT. It is only mounted
// when AUTH_REQUIRED is enabled; the default demo deployment runs open.
func AuthMiddleware(auth *authApp.AuthService, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "Authorization header missing")
				respondWithError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.WarnContext(r.Context(), "Invalid Authorization header format")
				respondWithError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := auth.ValidateToken(r.Context(), parts[1])
			if err != nil {
				logger.WarnContext(r.Context(), "Token validation failed", "error", err)
				respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), AuthenticatedUserContextKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
