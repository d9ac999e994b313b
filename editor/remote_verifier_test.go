package editor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-dash-server/editgate"
	"github.com/jrsteele09/go-dash-server/editor"
	"github.com/stretchr/testify/require"
)

func TestRemoteVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Secret string `json:"secret"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Secret != testSecret {
			http.Error(w, `{"error":"credential mismatch"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"capability-token-1"}`))
	}))
	t.Cleanup(srv.Close)

	t.Run("correct secret stores issued token", func(t *testing.T) {
		v := editor.NewRemoteVerifier(srv.URL)
		require.NoError(t, v.Verify(context.Background(), testSecret))
		require.Equal(t, "capability-token-1", v.Token())
	})

	t.Run("wrong secret", func(t *testing.T) {
		v := editor.NewRemoteVerifier(srv.URL)
		err := v.Verify(context.Background(), "guess")
		require.ErrorIs(t, err, editgate.ErrCredentialMismatch)
		require.Empty(t, v.Token())
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		v := editor.NewRemoteVerifier("http://127.0.0.1:1")
		require.Error(t, v.Verify(context.Background(), testSecret))
	})
}
