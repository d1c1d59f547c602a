// Package middleware provides authentication and authorization middleware for admin routes
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/korelium/catalog-service/internal/auth/service"
)

type contextKey string

const adminClaimsKey contextKey = "adminClaims"

// AuthMiddleware validates the bearer JWT and stores admin claims in the request context
func AuthMiddleware(tokenGenerator *service.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header or cookie
			var token string

			// Try Authorization header first
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			// If not in header, try cookie
			if token == "" {
				cookie, err := r.Cookie("admin_token")
				if err == nil {
					token = cookie.Value
				}
			}

			if token == "" {
				respondAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := tokenGenerator.ValidateToken(token)
			if err != nil {
				respondAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminClaims retrieves the admin claims from context
func GetAdminClaims(ctx context.Context) (*service.AdminClaims, bool) {
	claims, ok := ctx.Value(adminClaimsKey).(*service.AdminClaims)
	return claims, ok
}

// respondAuthError writes a JSON error body in the API envelope
func respondAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
