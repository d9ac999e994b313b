package config

// ProviderConfig describes the third-party identity provider used for login.
// Defaults target Discord's OAuth2 endpoints; any provider implementing the
// authorization-code grant works. When an issuer URL is set, endpoints are
// discovered via OIDC instead and the explicit endpoint settings are ignored.
type ProviderConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetAuthURL() string
	GetTokenURL() string
	GetProfileURL() string
	GetIssuerURL() string
	GetScopes() []string
}

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetClientID() string {
	return GetEnv("PROVIDER_CLIENT_ID", "")
}

func (Provider) GetClientSecret() string {
	return GetEnv("PROVIDER_CLIENT_SECRET", "")
}

func (p Provider) GetRedirectURI() string {
	return GetEnv("REDIRECT_URI", "http://localhost:3000/callback")
}

func (Provider) GetAuthURL() string {
	return GetEnv("PROVIDER_AUTH_URL", "https://discord.com/api/oauth2/authorize")
}

func (Provider) GetTokenURL() string {
	return GetEnv("PROVIDER_TOKEN_URL", "https://discord.com/api/oauth2/token")
}

func (Provider) GetProfileURL() string {
	return GetEnv("PROVIDER_PROFILE_URL", "https://discord.com/api/users/@me")
}

func (Provider) GetIssuerURL() string {
	return GetEnv("PROVIDER_ISSUER_URL", "")
}

func (Provider) GetScopes() []string {
	return []string{"identify", "guilds"}
}
