// Package editgate verifies the operator's edit credential and issues
// short-lived capability tokens for content writes. The reference hash stays
// on the server; browsers only ever see a token that expires on its own.
package editgate

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-dash-server/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCredentialMismatch = errors.New("credential mismatch")
	ErrInvalidEditToken   = errors.New("invalid edit token")
	ErrNotConfigured      = errors.New("edit gate not configured")
)

const tokenSubject = "content-editor"

type Service struct {
	secretHash string
	signingKey []byte
	expiry     time.Duration
}

func New(cfg config.SecurityConfig) *Service {
	return &Service{
		secretHash: cfg.GetOperatorSecretHash(),
		signingKey: []byte(cfg.GetEditTokenKey()),
		expiry:     cfg.GetEditTokenExpiry(),
	}
}

// Verify compares the entered secret against the configured bcrypt hash.
// Exact, case-sensitive match; a mismatch is terminal for the attempt.
func (s *Service) Verify(secret string) error {
	if s.secretHash == "" {
		return ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.secretHash), []byte(secret)); err != nil {
		return ErrCredentialMismatch
	}
	return nil
}

// Issue creates a signed capability token permitting content edits until it
// expires.
func (s *Service) Issue() (string, error) {
	if len(s.signingKey) == 0 {
		return "", ErrNotConfigured
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign edit token: %w", err)
	}
	return signed, nil
}

// Validate checks a capability token's signature, subject and expiry.
func (s *Service) Validate(tokenString string) error {
	if len(s.signingKey) == 0 {
		return ErrNotConfigured
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEditToken, err)
	}
	if claims.Subject != tokenSubject {
		return ErrInvalidEditToken
	}
	return nil
}
