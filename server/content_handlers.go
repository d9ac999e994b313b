package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jrsteele09/go-dash-server/content"
	"github.com/rs/zerolog/log"
)

// ContentGetHandler serves the current committed document
// (GET /api/content). Reads are public, matching the page itself.
func (s *Server) ContentGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.sync.Load(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to load content document")
			http.Error(w, `{"error":"unavailable","error_description":"Failed to load content"}`, http.StatusBadGateway)
			return
		}

		// The browser always wants the latest committed revision
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

type contentPutRequest struct {
	Document content.Document `json:"document"`
	// Token is the operator's personal access token for the content store,
	// supplied at save time and never persisted.
	Token string `json:"token"`
}

// ContentPutHandler submits the edited document through the conditional
// write protocol (PUT /api/content). Runs behind RequireEditToken.
func (s *Server) ContentPutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contentPutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid_request","error_description":"Malformed request body"}`, http.StatusBadRequest)
			return
		}
		if req.Document == nil {
			http.Error(w, `{"error":"invalid_request","error_description":"Missing document"}`, http.StatusBadRequest)
			return
		}

		err := s.sync.Save(r.Context(), req.Token, req.Document)
		switch {
		case err == nil:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "saved"})

		case errors.Is(err, content.ErrSaveAborted):
			http.Error(w, `{"error":"save_aborted","error_description":"No store credential supplied"}`, http.StatusBadRequest)

		case errors.Is(err, content.ErrConditionalWriteFailed):
			s.writeConflict(w, err)

		default:
			log.Err(err).Msg("Content save failed")
			http.Error(w, `{"error":"save_failed","error_description":"Store write failed"}`, http.StatusBadGateway)
		}
	}
}

// writeConflict reports a lost conditional write, including the remote
// document that won the race when it is known, so the operator sees what
// changed instead of a bare failure.
func (s *Server) writeConflict(w http.ResponseWriter, err error) {
	body := map[string]any{
		"error":             "conflict",
		"error_description": "Document changed remotely; reload and retry",
	}
	var conflict *content.ConflictError
	if errors.As(err, &conflict) {
		body["remote"] = conflict.Remote
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	_ = json.NewEncoder(w).Encode(body)
}
