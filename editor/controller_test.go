package editor_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-dash-server/content"
	"github.com/jrsteele09/go-dash-server/content/storefakes"
	"github.com/jrsteele09/go-dash-server/editgate"
	"github.com/jrsteele09/go-dash-server/editor"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "mySuperPassword"
	testPAT    = "ghp_testtoken"
)

// fakeVerifier accepts exactly testSecret.
type fakeVerifier struct {
	calls int
}

func (v *fakeVerifier) Verify(_ context.Context, secret string) error {
	v.calls++
	if secret != testSecret {
		return editgate.ErrCredentialMismatch
	}
	return nil
}

type fixture struct {
	store      *storefakes.FakeStore
	verifier   *fakeVerifier
	controller *editor.Controller
}

func setup(t *testing.T, doc content.Document) *fixture {
	t.Helper()

	store := storefakes.NewFakeStore(doc)
	verifier := &fakeVerifier{}
	controller := editor.NewController(verifier, content.NewSyncClient(store))
	require.NoError(t, controller.Load(context.Background()))

	return &fixture{store: store, verifier: verifier, controller: controller}
}

func TestControllerBeginEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("correct secret enters edit mode", func(t *testing.T) {
		f := setup(t, content.Document{"title": "Hello"})
		require.Equal(t, editor.StateReadOnly, f.controller.State())

		require.NoError(t, f.controller.BeginEdit(ctx, testSecret))
		require.Equal(t, editor.StateEditable, f.controller.State())
	})

	t.Run("wrong secret stays read-only", func(t *testing.T) {
		f := setup(t, content.Document{"title": "Hello"})

		err := f.controller.BeginEdit(ctx, "guess")
		require.ErrorIs(t, err, editgate.ErrCredentialMismatch)
		require.Equal(t, editor.StateReadOnly, f.controller.State())

		require.ErrorIs(t, f.controller.Set("title", "Welcome"), editor.ErrNotEditable)
	})

	t.Run("requires a loaded document", func(t *testing.T) {
		store := storefakes.NewFakeStore(content.Document{})
		c := editor.NewController(&fakeVerifier{}, content.NewSyncClient(store))

		require.ErrorIs(t, c.BeginEdit(ctx, testSecret), editor.ErrNotLoaded)
	})
}

func TestControllerApply(t *testing.T) {
	f := setup(t, content.Document{"title": "Hello"})

	display := map[string]string{
		"title":   "placeholder title",
		"tagline": "placeholder tagline", // No such key in the document
	}
	f.controller.Apply(display)

	require.Equal(t, "Hello", display["title"])
	require.Equal(t, "placeholder tagline", display["tagline"])
}

func TestControllerSave(t *testing.T) {
	ctx := context.Background()

	t.Run("edited field persists", func(t *testing.T) {
		f := setup(t, content.Document{"title": "Hello"})
		require.NoError(t, f.controller.BeginEdit(ctx, testSecret))
		require.NoError(t, f.controller.Set("title", "Welcome"))

		require.NoError(t, f.controller.Save(ctx, testPAT))
		require.Equal(t, editor.StateReadOnly, f.controller.State())
		require.Equal(t, content.Document{"title": "Welcome"}, f.store.Document())
	})

	t.Run("failed save stops edit mode but keeps edits", func(t *testing.T) {
		f := setup(t, content.Document{"title": "Hello"})
		require.NoError(t, f.controller.BeginEdit(ctx, testSecret))
		require.NoError(t, f.controller.Set("title", "Welcome"))

		err := f.controller.Save(ctx, "") // No credential: save aborts
		require.ErrorIs(t, err, content.ErrSaveAborted)
		require.Equal(t, editor.StateReadOnly, f.controller.State())
		require.Equal(t, "Hello", f.store.Document()["title"])

		// Re-entering edit mode retries with the same working copy
		require.NoError(t, f.controller.BeginEdit(ctx, testSecret))
		value, ok := f.controller.Field("title")
		require.True(t, ok)
		require.Equal(t, "Welcome", value)

		require.NoError(t, f.controller.Save(ctx, testPAT))
		require.Equal(t, "Welcome", f.store.Document()["title"])
	})

	t.Run("save outside edit mode refused", func(t *testing.T) {
		f := setup(t, content.Document{"title": "Hello"})
		require.ErrorIs(t, f.controller.Save(ctx, testPAT), editor.ErrNotEditable)
	})
}

func TestControllerCancel(t *testing.T) {
	ctx := context.Background()

	f := setup(t, content.Document{"title": "Hello"})
	require.NoError(t, f.controller.BeginEdit(ctx, testSecret))
	require.NoError(t, f.controller.Set("title", "Welcome"))

	f.controller.Cancel()
	require.Equal(t, editor.StateReadOnly, f.controller.State())

	value, _ := f.controller.Field("title")
	require.Equal(t, "Hello", value)
	require.Zero(t, f.store.CommitCalls)
}
