package http

import (
	"net/http"
	"strings"

	"github.com/hdtbpedro/web-shop-direct/internal/auth"
)

// AdminAuthMiddleware rejects requests whose bearer token does not match a
// live admin session.
func AdminAuthMiddleware(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if !gate.Authenticated(r.Context(), token) {
				respondError(w, http.StatusUnauthorized, "unauthenticated", "admin session required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
