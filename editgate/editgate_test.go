package editgate_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-dash-server/editgate"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "mySuperPassword"

type testSecurityConfig struct {
	hash   string
	key    string
	expiry time.Duration
}

func (c testSecurityConfig) GetOperatorSecretHash() string     { return c.hash }
func (c testSecurityConfig) GetEditTokenKey() string           { return c.key }
func (c testSecurityConfig) GetEditTokenExpiry() time.Duration { return c.expiry }
func (c testSecurityConfig) GetMaxSessionAge() time.Duration   { return time.Hour }

func newTestService(t *testing.T, expiry time.Duration) *editgate.Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testSecret), bcrypt.MinCost)
	require.NoError(t, err)

	return editgate.New(testSecurityConfig{
		hash:   string(hash),
		key:    "test-signing-key-0123456789",
		expiry: expiry,
	})
}

func TestServiceVerify(t *testing.T) {
	service := newTestService(t, 15*time.Minute)

	t.Run("correct secret", func(t *testing.T) {
		require.NoError(t, service.Verify(testSecret))
	})

	t.Run("wrong secret", func(t *testing.T) {
		require.ErrorIs(t, service.Verify("guess"), editgate.ErrCredentialMismatch)
	})

	t.Run("case sensitive", func(t *testing.T) {
		require.ErrorIs(t, service.Verify("mysuperpassword"), editgate.ErrCredentialMismatch)
	})

	t.Run("unconfigured gate refuses all", func(t *testing.T) {
		unconfigured := editgate.New(testSecurityConfig{})
		require.ErrorIs(t, unconfigured.Verify(testSecret), editgate.ErrNotConfigured)
	})
}

func TestServiceTokens(t *testing.T) {
	t.Run("issued token validates", func(t *testing.T) {
		service := newTestService(t, 15*time.Minute)
		token, err := service.Issue()
		require.NoError(t, err)
		require.NoError(t, service.Validate(token))
	})

	t.Run("expired token rejected", func(t *testing.T) {
		service := newTestService(t, -time.Minute)
		token, err := service.Issue()
		require.NoError(t, err)
		require.ErrorIs(t, service.Validate(token), editgate.ErrInvalidEditToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		service := newTestService(t, 15*time.Minute)
		require.ErrorIs(t, service.Validate("not.a.jwt"), editgate.ErrInvalidEditToken)
	})

	t.Run("token signed with another key rejected", func(t *testing.T) {
		service := newTestService(t, 15*time.Minute)
		other := editgate.New(testSecurityConfig{
			hash:   "irrelevant",
			key:    "different-signing-key",
			expiry: 15 * time.Minute,
		})

		token, err := other.Issue()
		require.NoError(t, err)
		require.ErrorIs(t, service.Validate(token), editgate.ErrInvalidEditToken)
	})
}
