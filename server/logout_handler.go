package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// LogoutHandler destroys the login session and clears its cookie
// (GET /auth/logout).
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			if err := s.sessions.Delete(r.Context(), cookie.Value); err != nil {
				log.Err(err).Msg("Failed to delete session")
			}
		}
		s.ClearLoginSessionCookie(w, r)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
