// Package editor implements the edit-mode state machine driving the content
// sync protocol: a read-only view, a credential gate, and an editable
// working copy that persists through a conditional write.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/go-dash-server/content"
)

type State string

const (
	StateReadOnly               State = "read-only"
	StatePendingCredentialCheck State = "pending-credential-check"
	StateEditable               State = "editable"
)

var (
	ErrNotEditable = errors.New("not in edit mode")
	ErrNotLoaded   = errors.New("document not loaded")
)

// Verifier checks the operator's edit credential. Verification happens
// server-side; the controller never holds a reference digest.
type Verifier interface {
	Verify(ctx context.Context, secret string) error
}

// Controller owns the working copy of the document and the edit-mode state.
// Not safe for concurrent use; it models a single operator's session.
type Controller struct {
	verifier Verifier
	sync     *content.SyncClient

	state    State
	baseline content.Document // Last document known committed
	working  content.Document
}

func NewController(verifier Verifier, sync *content.SyncClient) *Controller {
	return &Controller{
		verifier: verifier,
		sync:     sync,
		state:    StateReadOnly,
	}
}

func (c *Controller) State() State {
	return c.state
}

// Load fetches the committed document into the working copy.
func (c *Controller) Load(ctx context.Context) error {
	doc, err := c.sync.Load(ctx)
	if err != nil {
		return err
	}
	c.baseline = doc
	c.working = doc.Clone()
	return nil
}

// Apply merges the working copy into a display mapping: keys present in the
// document overwrite the display value, keys absent from the document leave
// the existing placeholder untouched.
func (c *Controller) Apply(display map[string]string) {
	for key := range display {
		if value, ok := c.working[key]; ok {
			display[key] = value
		}
	}
}

// BeginEdit attempts the transition into edit mode. The entered secret is
// checked by the verifier; on mismatch the controller stays read-only.
func (c *Controller) BeginEdit(ctx context.Context, secret string) error {
	if c.state == StateEditable {
		return nil
	}
	if c.working == nil {
		return ErrNotLoaded
	}

	c.state = StatePendingCredentialCheck
	if err := c.verifier.Verify(ctx, secret); err != nil {
		c.state = StateReadOnly
		return err
	}
	c.state = StateEditable
	return nil
}

// Set updates a field in the working copy. Only permitted in edit mode.
func (c *Controller) Set(key, value string) error {
	if c.state != StateEditable {
		return ErrNotEditable
	}
	c.working[key] = value
	return nil
}

func (c *Controller) Field(key string) (string, bool) {
	value, ok := c.working[key]
	return value, ok
}

// Cancel leaves edit mode discarding any edits since the last load or save.
func (c *Controller) Cancel() {
	if c.baseline != nil {
		c.working = c.baseline.Clone()
	}
	c.state = StateReadOnly
}

// Save persists the working copy and stops edit mode whether the write
// succeeded or not. On failure the edits are kept, so re-entering edit mode
// and saving again retries with the same working copy.
func (c *Controller) Save(ctx context.Context, token string) error {
	if c.state != StateEditable {
		return ErrNotEditable
	}

	c.state = StateReadOnly
	if err := c.sync.Save(ctx, token, c.working); err != nil {
		return fmt.Errorf("save edits: %w", err)
	}
	c.baseline = c.working.Clone()
	return nil
}
