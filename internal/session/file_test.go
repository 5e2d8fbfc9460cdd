package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mcoot/deckbuilder/internal/testutil"
)

func newTestFileStore(t *testing.T) *FileTokenStore {
	t.Helper()
	return NewFileTokenStore(filepath.Join(t.TempDir(), "deckbuilder", "token"))
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "missing file means logged out")

	require.NoError(t, store.Save(ctx, "abc"))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, store.Clear(ctx))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileTokenStoreClearMissingFile(t *testing.T) {
	store := newTestFileStore(t)
	assert.NoError(t, store.Clear(context.Background()))
}

func TestFileTokenStoreLoadTrimsWhitespace(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0700))
	require.NoError(t, os.WriteFile(store.Path(), []byte("abc\n"), 0600))

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestFileTokenStoreWatchSeesOtherWriters(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	watched := newTestFileStore(t)
	other := NewFileTokenStore(watched.Path())

	changes, err := watched.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, other.Save(ctx, "from-other-process"))
	assert.Equal(t, "from-other-process", receive(t, changes))

	require.NoError(t, other.Clear(ctx))
	assert.Equal(t, "", receive(t, changes))

	cancel()
	for range changes {
		// drain until the watcher closes the channel
	}
}

func TestFileTokenStoreWatchSkipsOwnWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	store := newTestFileStore(t)

	changes, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "mine"))
	time.Sleep(4 * DefaultDebounce)
	require.NoError(t, NewFileTokenStore(store.Path()).Save(ctx, "theirs"))

	assert.Equal(t, "theirs", receive(t, changes))

	cancel()
	for range changes {
		// drain until the watcher closes the channel
	}
}

func TestFileTokenStoreFeedsStore(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	shared := newTestFileStore(t)

	tab1 := New(shared, nil, testutil.NopLogger())
	tab2 := New(NewFileTokenStore(shared.Path()), nil, testutil.NopLogger())

	changed := make(chan Change, 1)
	tab2.Subscribe(func(c Change) { changed <- c })

	feedCtx, stopFeed := context.WithCancel(ctx)
	require.NoError(t, tab2.Follow(feedCtx, NewFileTokenStore(shared.Path())))

	require.NoError(t, tab1.SetToken(ctx, "shared-token"))

	select {
	case c := <-changed:
		assert.Equal(t, Change{Authenticated: true, Source: SourceExternal}, c)
	case <-time.After(2 * time.Second):
		t.Fatal("tab2 did not observe login")
	}
	assert.Equal(t, "shared-token", tab2.Token())

	stopFeed()
	cancel()
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "feed closed unexpectedly")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for token change")
		return ""
	}
}
