package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jrsteele09/go-dash-server/editgate"
	"github.com/rs/zerolog/log"
)

// EditSessionHandler verifies the operator's edit secret and issues a
// short-lived capability token (POST /api/edit-session). The reference hash
// lives only on the server; the browser never receives anything it could
// brute-force offline.
func (s *Server) EditSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Secret string `json:"secret"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid_request","error_description":"Malformed request body"}`, http.StatusBadRequest)
			return
		}

		if err := s.editGate.Verify(req.Secret); err != nil {
			if errors.Is(err, editgate.ErrNotConfigured) {
				http.Error(w, `{"error":"unavailable","error_description":"Editing is not configured"}`, http.StatusServiceUnavailable)
				return
			}
			http.Error(w, `{"error":"unauthorized","error_description":"Wrong password"}`, http.StatusUnauthorized)
			return
		}

		token, err := s.editGate.Issue()
		if err != nil {
			log.Err(err).Msg("Failed to issue edit token")
			http.Error(w, `{"error":"internal","error_description":"Failed to issue edit token"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}
}
