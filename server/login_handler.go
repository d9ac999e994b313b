package server

import "net/http"

// LoginHandler starts the authorization-code flow: it generates a state
// value tied to this browser and redirects to the identity provider's
// authorization endpoint (GET /login).
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := generateRandomString(16)
		s.SetStateCookie(w, r, state)
		http.Redirect(w, r, s.provider.AuthCodeURL(state), http.StatusFound)
	}
}
