package storefakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/go-dash-server/content"
	"github.com/pkg/errors"
)

var _ content.Store = (*FakeStore)(nil)

// FakeStore is an in-memory Store honouring the conditional-write contract:
// commits carrying a stale version tag are rejected and the stored document
// is left untouched.
type FakeStore struct {
	lock sync.Mutex
	doc  content.Document
	rev  int

	FetchErr  error // When set, Fetch fails with this error
	CommitErr error // When set, Commit fails with this error

	FetchCalls  int
	CommitCalls int

	// FetchHook runs after each fetch returns, letting tests interleave a
	// remote mutation between a save's version read and its commit.
	FetchHook func()
}

func NewFakeStore(doc content.Document) *FakeStore {
	return &FakeStore{doc: doc.Clone()}
}

func (s *FakeStore) tag() content.VersionTag {
	return content.VersionTag(fmt.Sprintf("sha-%d", s.rev))
}

func (s *FakeStore) Fetch(_ context.Context, _ string) (content.Document, content.VersionTag, error) {
	s.lock.Lock()
	s.FetchCalls++
	if s.FetchErr != nil {
		s.lock.Unlock()
		return nil, "", s.FetchErr
	}
	doc, tag := s.doc.Clone(), s.tag()
	hook := s.FetchHook
	s.lock.Unlock()

	if hook != nil {
		hook()
	}
	return doc, tag, nil
}

func (s *FakeStore) Commit(_ context.Context, _ string, doc content.Document, tag content.VersionTag, _ string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.CommitCalls++
	if s.CommitErr != nil {
		return s.CommitErr
	}
	if tag == "" {
		return content.ErrVersionRequired
	}
	if tag != s.tag() {
		return errors.Wrap(content.ErrConditionalWriteFailed, "stale version tag")
	}
	s.doc = doc.Clone()
	s.rev++
	return nil
}

// Document returns the currently committed document.
func (s *FakeStore) Document() content.Document {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.doc.Clone()
}

// Tag returns the current committed version tag.
func (s *FakeStore) Tag() content.VersionTag {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.tag()
}

// MutateRemotely simulates an external commit: the document changes and the
// version tag moves on.
func (s *FakeStore) MutateRemotely(doc content.Document) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.doc = doc.Clone()
	s.rev++
}

// Calls reports the total number of store round trips.
func (s *FakeStore) Calls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.FetchCalls + s.CommitCalls
}
