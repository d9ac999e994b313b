package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-dash-server/identity"
	"github.com/jrsteele09/go-dash-server/sessions"
	"github.com/rs/zerolog/log"
)

// CallbackHandler completes the login flow (GET /callback). Every failure is
// terminal for this attempt and shown inline; the session is only populated
// once both the token exchange and the identity fetch have succeeded.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if errorParam := query.Get("error"); errorParam != "" {
			inlineError(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, query.Get("error_description")))
			return
		}

		code := query.Get("code")
		if code == "" {
			inlineError(w, "No code provided")
			return
		}

		// The state must match the cookie set when login was initiated
		stateCookie, err := r.Cookie(stateCookieName)
		if err != nil || stateCookie.Value == "" || stateCookie.Value != query.Get("state") {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}
		s.ClearStateCookie(w, r)

		// Exchange authorization code for an access token. Codes are single
		// use, so there is no retry on failure.
		token, err := s.provider.Exchange(r.Context(), code)
		if err != nil {
			log.Err(err).Msg("Token exchange failed")
			inlineError(w, "Error getting token")
			return
		}

		// Fetch the authenticated user's identity
		var profile *identity.UserProfile
		if s.provider.VerifiesIDTokens() {
			profile, err = s.provider.ProfileFromIDToken(r.Context(), token)
		} else {
			profile, err = s.provider.FetchProfile(r.Context(), token)
		}
		if err != nil {
			log.Err(err).Msg("Identity fetch failed")
			inlineError(w, "Error getting user info")
			return
		}

		// Populate the session and hand the browser its identifier
		now := time.Now()
		sessionID := uuid.NewString()
		session := sessions.Session{
			User:      profile,
			CreatedAt: now,
			ExpiresAt: now.Add(s.config.GetMaxSessionAge()),
		}
		if err := s.sessions.Upsert(r.Context(), sessionID, session); err != nil {
			log.Err(err).Msg("Failed to create session")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		s.SetLoginSessionCookie(w, r, sessionID, int(s.config.GetMaxSessionAge().Seconds()))
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// inlineError reports a login failure as inline page text, mirroring how the
// flow surfaces every terminal failure directly to the visitor.
func inlineError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, msg)
}
