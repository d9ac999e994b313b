package content_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-dash-server/content"
	"github.com/jrsteele09/go-dash-server/content/storefakes"
	"github.com/stretchr/testify/require"
)

const testPAT = "ghp_testtoken"

func TestSyncClient_Load(t *testing.T) {
	store := storefakes.NewFakeStore(content.Document{"title": "Hello"})
	client := content.NewSyncClient(store)

	doc, err := client.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Hello", doc["title"])
}

func TestSyncClient_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("no credential aborts before any network call", func(t *testing.T) {
		store := storefakes.NewFakeStore(content.Document{"title": "Hello"})
		client := content.NewSyncClient(store)

		err := client.Save(ctx, "", content.Document{"title": "Welcome"})
		require.ErrorIs(t, err, content.ErrSaveAborted)
		require.Zero(t, store.Calls())
		require.Equal(t, "Hello", store.Document()["title"])
	})

	t.Run("edit round trip", func(t *testing.T) {
		store := storefakes.NewFakeStore(content.Document{"title": "Hello"})
		client := content.NewSyncClient(store)

		doc, err := client.Load(ctx)
		require.NoError(t, err)
		doc["title"] = "Welcome"

		require.NoError(t, client.Save(ctx, testPAT, doc))
		require.Equal(t, content.Document{"title": "Welcome"}, store.Document())
	})

	t.Run("no-op save stores an equal document", func(t *testing.T) {
		original := content.Document{"title": "Hello", "tagline": "world"}
		store := storefakes.NewFakeStore(original)
		client := content.NewSyncClient(store)

		doc, err := client.Load(ctx)
		require.NoError(t, err)
		require.NoError(t, client.Save(ctx, testPAT, doc))
		require.True(t, store.Document().Equal(original))
	})

	t.Run("version tag is re-fetched at save time", func(t *testing.T) {
		store := storefakes.NewFakeStore(content.Document{"title": "Hello"})
		client := content.NewSyncClient(store)

		doc, err := client.Load(ctx)
		require.NoError(t, err)

		// Remote change after load but before save: the save still succeeds
		// because the tag is taken from the pre-write fetch, not the load.
		store.MutateRemotely(content.Document{"title": "Elsewhere", "extra": "x"})

		doc["title"] = "Welcome"
		require.NoError(t, client.Save(ctx, testPAT, doc))
		require.Equal(t, "Welcome", store.Document()["title"])
	})

	t.Run("stale tag at write time fails and leaves remote intact", func(t *testing.T) {
		store := storefakes.NewFakeStore(content.Document{"title": "Hello"})
		client := content.NewSyncClient(store)

		// Interleave a remote commit between the save's version read and its
		// conditional write.
		store.FetchHook = func() {
			store.FetchHook = nil
			store.MutateRemotely(content.Document{"title": "Raced"})
		}

		err := client.Save(ctx, testPAT, content.Document{"title": "Welcome"})
		require.ErrorIs(t, err, content.ErrConditionalWriteFailed)
		require.Equal(t, "Raced", store.Document()["title"])

		var conflict *content.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, "Raced", conflict.Remote["title"])
	})

	t.Run("fetch failure surfaces without commit", func(t *testing.T) {
		store := storefakes.NewFakeStore(content.Document{"title": "Hello"})
		store.FetchErr = context.DeadlineExceeded
		client := content.NewSyncClient(store)

		err := client.Save(ctx, testPAT, content.Document{"title": "Welcome"})
		require.Error(t, err)
		require.Zero(t, store.CommitCalls)
	})
}
