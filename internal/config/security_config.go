package config

import "time"

type SecurityConfig interface {
	GetOperatorSecretHash() string
	GetEditTokenKey() string
	GetEditTokenExpiry() time.Duration
	GetMaxSessionAge() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetOperatorSecretHash returns the bcrypt hash of the operator's edit
// secret. The hash never leaves the server; the browser only ever sees a
// short-lived edit token issued after a successful check.
func (Security) GetOperatorSecretHash() string {
	return GetEnv("OPERATOR_SECRET_HASH", "")
}

func (Security) GetEditTokenKey() string {
	return GetEnv("EDIT_TOKEN_KEY", "")
}

func (Security) GetEditTokenExpiry() time.Duration {
	return 15 * time.Minute
}

func (Security) GetMaxSessionAge() time.Duration {
	return 12 * time.Hour // Login sessions expire after 12 hours
}
