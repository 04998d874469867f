package web

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghrd1/shop-front/internal/session"
)

// RequestIDMiddleware echoes the caller's request ID or mints one.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

// RequireAuth gates a route group on an authenticated session. Nothing but
// login, registration and health runs unauthenticated.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAuthenticated() {
				respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in first")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates the admin group on the role discriminant.
func RequireAdmin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAdmin() {
				respondError(w, http.StatusForbidden, "forbidden", "admin role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
