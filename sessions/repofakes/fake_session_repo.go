package repofakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-dash-server/sessions"
	"github.com/pkg/errors"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	store map[string]sessions.Session
	lock  sync.RWMutex

	UpsertErr error // When set, Upsert fails with this error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		store: make(map[string]sessions.Session),
	}
}

func (sr *FakeSessionRepo) Upsert(_ context.Context, sessionID string, session sessions.Session) error {
	if sr.UpsertErr != nil {
		return sr.UpsertErr
	}
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.store[sessionID] = session
	return nil
}

func (sr *FakeSessionRepo) Get(_ context.Context, sessionID string) (sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	session, ok := sr.store[sessionID]
	if !ok {
		return sessions.Session{}, errors.Wrap(sessions.ErrSessionNotFound, sessionID)
	}
	if session.Expired() {
		return sessions.Session{}, sessions.ErrSessionExpired
	}
	return session, nil
}

func (sr *FakeSessionRepo) Delete(_ context.Context, sessionID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	delete(sr.store, sessionID)
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (sr *FakeSessionRepo) Len() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return len(sr.store)
}
