package identity

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-dash-server/internal/config"
	"golang.org/x/oauth2"
)

// NewOIDCProvider builds a Provider whose endpoints come from the issuer's
// discovery document instead of explicit configuration. ID tokens returned
// alongside the access token are verified and used as the identity source,
// replacing the REST profile fetch.
func NewOIDCProvider(ctx context.Context, cfg config.ProviderConfig) (*Provider, error) {
	oidcProvider, err := oidc.NewProvider(ctx, cfg.GetIssuerURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURI(),
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       append([]string{oidc.ScopeOpenID, "profile"}, cfg.GetScopes()...),
		},
		verifier: oidcProvider.Verifier(&oidc.Config{
			ClientID: cfg.GetClientID(),
		}),
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

// VerifiesIDTokens reports whether this provider identifies users through
// verified ID tokens rather than a profile endpoint.
func (p *Provider) VerifiesIDTokens() bool {
	return p.verifier != nil
}

// ProfileFromIDToken extracts the user profile from the verified ID token
// carried in an OAuth2 token response.
func (p *Provider) ProfileFromIDToken(ctx context.Context, token *oauth2.Token) (*UserProfile, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, ErrNoIDToken
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityFetchFailed, err)
	}

	var claims struct {
		Sub     string   `json:"sub"`
		Name    string   `json:"name"`
		Picture string   `json:"picture"`
		Groups  []string `json:"groups"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityFetchFailed, err)
	}

	profile := &UserProfile{
		ID:       claims.Sub,
		Username: claims.Name,
		Avatar:   claims.Picture,
	}
	for _, g := range claims.Groups {
		profile.Guilds = append(profile.Guilds, Guild{ID: g, Name: g})
	}
	return profile, nil
}
