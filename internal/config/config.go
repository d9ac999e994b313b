package config

type Config interface {
	EnvConfig
	ProviderConfig
	ContentConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
	GetRedisURL() string
}

type mainConfig struct {
	EnvVars
	Provider
	Content
	Security
}

func New() Config {
	return mainConfig{}
}
