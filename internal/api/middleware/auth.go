package middleware

import (
	"net/http"
	"strings"

	"github.com/GrahamMcBain/urit/internal/api/apierr"
	"github.com/GrahamMcBain/urit/internal/services/auth"
)

// APIKeyHeader carries the shared API key
const APIKeyHeader = "X-API-Key"

// APIKey rejects requests without a valid API key.
// It is a no-op when no key is configured.
func APIKey(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.RequiresAPIKey() {
				next.ServeHTTP(w, r)
				return
			}

			key := extractKey(r)
			if key == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := authService.ValidateAPIKey(key); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractKey extracts the API key from the request
func extractKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}

	// Fall back to a bearer token
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
