package content

import "context"

// VersionTag identifies a committed revision of the document: the store's
// content hash for the current blob. A write must carry the tag from the
// most recent read or the store rejects it.
type VersionTag string

// Store is the remote versioned document store. Reads may be anonymous
// (empty token) where the store allows it; writes always need the operator's
// credential.
type Store interface {
	// Fetch returns the current committed document and its version tag.
	Fetch(ctx context.Context, token string) (Document, VersionTag, error)

	// Commit writes the document conditionally: the supplied tag must match
	// the document's current committed version or the store rejects the
	// write with ErrConditionalWriteFailed. An empty tag fails with
	// ErrVersionRequired.
	Commit(ctx context.Context, token string, doc Document, tag VersionTag, message string) error
}
