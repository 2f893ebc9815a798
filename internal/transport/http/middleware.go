package http

import (
	"context"
	"net/http"
	"strings"

	"classquiz-service/internal/auth"
)

type contextKey struct{}

var claimsKey contextKey

// claimsFrom pulls the verified token claims out of the request context.
func claimsFrom(r *http.Request) (auth.Claims, bool) {
	claims, ok := r.Context().Value(claimsKey).(auth.Claims)
	return claims, ok
}

// authenticate verifies the bearer token and attaches its claims to the
// request context. Missing token is 401; invalid or expired is 403.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}
		claims, err := h.tokens.Verify(token)
		if err != nil {
			writeMessage(w, http.StatusForbidden, "Forbidden: Invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// requireRole gates a route on the role carried by the verified token.
func requireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r)
		if !ok || claims.Role != role {
			writeMessage(w, http.StatusForbidden, "Forbidden: "+role+" role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
