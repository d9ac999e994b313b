package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-dash-server/internal/config"
	"golang.org/x/oauth2"
)

const requestTimeout = 10 * time.Second

// Provider wraps the identity provider's OAuth2 endpoints. It performs the
// authorization-code exchange and fetches the authenticated user's profile.
type Provider struct {
	oauth      *oauth2.Config
	profileURL string
	httpClient *http.Client
	verifier   *oidc.IDTokenVerifier // Set only for OIDC-discovered providers
}

// NewProvider builds a Provider from explicitly configured endpoints.
func NewProvider(cfg config.ProviderConfig) *Provider {
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURI(),
			Scopes:       cfg.GetScopes(),
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.GetAuthURL(),
				TokenURL: cfg.GetTokenURL(),
			},
		},
		profileURL: cfg.GetProfileURL(),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// AuthCodeURL returns the provider's authorization URL for the given state,
// carrying the client ID, encoded redirect URI, response_type=code and the
// requested scopes. No side effects.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange swaps an authorization code for an access token via a
// form-encoded POST to the token endpoint. Codes are single use: a failed
// exchange is terminal and must not be retried with the same code. The
// client secret travels only inside the request body and is never logged.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenExchangeFailed, err)
	}
	return token, nil
}

// FetchProfile retrieves the current user from the provider with a bearer
// token. When the "guilds" scope was requested, guild memberships are
// fetched as well. Any non-success response fails the whole operation; the
// caller must not populate the session in that case.
func (p *Provider) FetchProfile(ctx context.Context, token *oauth2.Token) (*UserProfile, error) {
	var profile UserProfile
	if err := p.getJSON(ctx, p.profileURL, token, &profile); err != nil {
		return nil, err
	}

	if slices.Contains(p.oauth.Scopes, "guilds") {
		if err := p.getJSON(ctx, p.profileURL+"/guilds", token, &profile.Guilds); err != nil {
			return nil, err
		}
	}

	return &profile, nil
}

func (p *Provider) getJSON(ctx context.Context, url string, token *oauth2.Token, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIdentityFetchFailed, err)
	}
	token.SetAuthHeader(req)

	res, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIdentityFetchFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%w: %s: %s", ErrIdentityFetchFailed, res.Status, body)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrIdentityFetchFailed, err)
	}
	return nil
}
