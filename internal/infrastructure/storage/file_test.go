package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))

	_, ok, err := store.Get(context.Background(), "accent-color")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreSetGet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	store := NewFileStore(path)

	require.NoError(t, store.Set(ctx, "accent-color", "pink"))
	require.NoError(t, store.Set(ctx, "style-preset", "lyra"))

	v, ok, err := store.Get(ctx, "accent-color")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "pink", v)

	_, err = os.Stat(path)
	require.NoError(t, err, "file should be created on first write")
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")
}

func TestFileStoreSeesWritesFromOtherInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")
	tabA := NewFileStore(path)
	tabB := NewFileStore(path)

	_, ok, err := tabB.Get(ctx, "accent-color")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, tabA.Set(ctx, "accent-color", "blue"))
	v, ok, err := tabB.Get(ctx, "accent-color")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "blue", v)

	// Same length value: the change must still be observed.
	require.NoError(t, tabA.Set(ctx, "accent-color", "pink"))
	v, _, err = tabB.Get(ctx, "accent-color")
	require.NoError(t, err)
	assert.Equal(t, "pink", v)
}

func TestFileStoreDoesNotClobberOtherWriters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")
	tabA := NewFileStore(path)
	tabB := NewFileStore(path)

	require.NoError(t, tabA.Set(ctx, "accent-color", "blue"))
	require.NoError(t, tabB.Set(ctx, "menu-accent", "bold"))

	v, ok, err := tabA.Get(ctx, "accent-color")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "blue", v)

	v, ok, err = tabA.Get(ctx, "menu-accent")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bold", v)
}

func TestFileStoreConcurrentWritersKeepEveryKey(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.json")
	stores := []*FileStore{NewFileStore(path), NewFileStore(path)}

	const perStore = 100
	var wg sync.WaitGroup
	errs := make(chan error, len(stores)*perStore)
	for i, store := range stores {
		for n := 0; n < perStore; n++ {
			wg.Add(1)
			go func(store *FileStore, key string) {
				defer wg.Done()
				errs <- store.Set(ctx, key, "v")
			}(store, fmt.Sprintf("tab%d-key%d", i, n))
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	reader := NewFileStore(path)
	for i := range stores {
		for n := 0; n < perStore; n++ {
			_, ok, err := reader.Get(ctx, fmt.Sprintf("tab%d-key%d", i, n))
			require.NoError(t, err)
			assert.True(t, ok, "tab%d-key%d lost", i, n)
		}
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))

	require.NoError(t, store.Set(ctx, "theme", "high-contrast"))
	require.NoError(t, store.Delete(ctx, "theme"))
	require.NoError(t, store.Delete(ctx, "never-written"))

	_, ok, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreCorruptFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	_, _, err := store.Get(context.Background(), "theme")
	require.Error(t, err)
}

func TestFileStoreQuota(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"), WithMaxBytes(16))

	err := store.Set(context.Background(), "accent-color", "pink")
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	require.ErrorIs(t, store.Set(ctx, "theme", "vercel"), context.Canceled)
}
