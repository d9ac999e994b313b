// Package sessions holds per-browser login state keyed by an opaque session
// identifier carried in a cookie. A session is created on successful login
// completion and holds exactly one user profile until logout or expiry.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/jrsteele09/go-dash-server/identity"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

type Session struct {
	User      *identity.UserProfile `json:"user,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	ExpiresAt time.Time             `json:"expires_at"`
}

// Authenticated reports whether the session holds a user profile.
func (s Session) Authenticated() bool {
	return s.User != nil
}

func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(time.Now())
}

type Repo interface {
	Upsert(ctx context.Context, sessionID string, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
}
