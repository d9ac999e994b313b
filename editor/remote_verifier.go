package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/go-dash-server/editgate"
)

// RemoteVerifier checks the operator secret against the dashboard server's
// edit-session endpoint and keeps the capability token it issues. The token
// accompanies subsequent content API requests.
type RemoteVerifier struct {
	endpoint   string
	httpClient *http.Client
	token      string
}

func NewRemoteVerifier(endpoint string) *RemoteVerifier {
	return &RemoteVerifier{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *RemoteVerifier) Verify(ctx context.Context, secret string) error {
	body, err := json.Marshal(map[string]string{"secret": secret})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("verify credential: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return editgate.ErrCredentialMismatch
	case res.StatusCode != http.StatusOK:
		return fmt.Errorf("verify credential: unexpected status %s", res.Status)
	}

	var issued struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&issued); err != nil {
		return fmt.Errorf("verify credential: %w", err)
	}
	v.token = issued.Token
	return nil
}

// Token returns the capability token from the last successful verification.
func (v *RemoteVerifier) Token() string {
	return v.token
}
