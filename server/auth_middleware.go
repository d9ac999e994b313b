package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-dash-server/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated user profile
	ContextKeyUser ContextKey = "user"
)

// RequireSessionAuth gates protected routes: requests whose session holds a
// user pass through with the profile in context, everything else is
// redirected to the login route. The session itself is never mutated here.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil {
				// No session cookie - redirect to login
				http.Redirect(w, r, RouteLogin, http.StatusFound)
				return
			}

			session, err := s.sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, sessions.ErrSessionExpired) {
					s.ClearLoginSessionCookie(w, r)
				}
				http.Redirect(w, r, RouteLogin, http.StatusFound)
				return
			}

			if !session.Authenticated() {
				http.Redirect(w, r, RouteLogin, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, session.User)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireEditToken validates the bearer capability token issued by the edit
// gate. Content writes without a valid token are refused.
func (s *Server) RequireEditToken() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"unauthorized","error_description":"Missing Authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				http.Error(w, `{"error":"unauthorized","error_description":"Invalid Authorization header format"}`, http.StatusUnauthorized)
				return
			}

			if err := s.editGate.Validate(parts[1]); err != nil {
				http.Error(w, `{"error":"unauthorized","error_description":"Invalid or expired edit token"}`, http.StatusUnauthorized)
				return
			}

			next(w, r)
		}
	}
}
