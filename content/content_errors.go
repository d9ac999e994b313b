package content

import "errors"

var (
	ErrSaveAborted            = errors.New("save aborted: no credential supplied")
	ErrConditionalWriteFailed = errors.New("conditional write failed")
	ErrVersionRequired        = errors.New("version tag required for write")
	ErrDocumentNotFound       = errors.New("document not found")
)

// ConflictError carries the remote document that won the race, so the
// operator can see what changed instead of a bare failure.
type ConflictError struct {
	Remote Document
}

func (e *ConflictError) Error() string {
	return "conditional write failed: document changed remotely"
}

func (e *ConflictError) Unwrap() error {
	return ErrConditionalWriteFailed
}
