package content

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// SyncClient orchestrates the read-modify-write protocol: load the document,
// let the caller edit a working copy, then submit a conditional write keyed
// on a freshly fetched version tag.
type SyncClient struct {
	store Store
}

func NewSyncClient(store Store) *SyncClient {
	return &SyncClient{store: store}
}

// Load fetches the current document. The version tag observed here is
// deliberately discarded: Save re-fetches it immediately before writing to
// keep the race window minimal.
func (c *SyncClient) Load(ctx context.Context) (Document, error) {
	doc, _, err := c.store.Fetch(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}

// Save submits the working document. Without a credential it aborts before
// any network call. Failures are terminal: no retry, no backoff, and the
// caller's working copy is untouched so the operator can re-invoke save.
func (c *SyncClient) Save(ctx context.Context, token string, doc Document) error {
	if token == "" {
		return ErrSaveAborted
	}

	_, tag, err := c.store.Fetch(ctx, token)
	if err != nil {
		return fmt.Errorf("fetch current version: %w", err)
	}

	message := fmt.Sprintf("content update %s", time.Now().UTC().Format(time.RFC3339))
	if err := c.store.Commit(ctx, token, doc, tag, message); err != nil {
		if errors.Is(err, ErrConditionalWriteFailed) {
			return c.conflict(ctx, token, err)
		}
		return err
	}
	return nil
}

// conflict fetches the remote document that won the race so it can be shown
// to the operator. If that fetch fails too, the original error stands.
func (c *SyncClient) conflict(ctx context.Context, token string, cause error) error {
	remote, _, err := c.store.Fetch(ctx, token)
	if err != nil {
		return cause
	}
	return &ConflictError{Remote: remote}
}
