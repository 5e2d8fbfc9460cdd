package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/deckbuilder/internal/api/apierr"
)

type contextKey string

const usernameContextKey contextKey = "username"

// TokenValidator resolves a bearer token to the username it was issued to
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// Auth creates authentication middleware
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			username, err := validator.ValidateToken(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), usernameContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// GetUsername returns the authenticated username from the request context
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameContextKey).(string)
	return username
}

// MustGetUsername returns the authenticated username or panics
func MustGetUsername(ctx context.Context) string {
	username := GetUsername(ctx)
	if username == "" {
		panic("no username in context - auth middleware not applied?")
	}
	return username
}
