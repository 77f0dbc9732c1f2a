package remote

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/prism/internal/controller"
	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/prism/internal/syncbus"
)

func newRuntime(t *testing.T, kv *storage.MemoryStore) *Runtime {
	t.Helper()
	page := controller.NewProvider(controller.Options{
		Storage: kv,
		PollPolicy: syncbus.PollPolicy{NewTicker: func(time.Duration) syncbus.Ticker {
			return syncbus.NewManualTicker()
		}},
	})
	r, err := New(Options{
		Addr:        "127.0.0.1:0",
		HostKeyPath: filepath.Join(t.TempDir(), "host_key"),
		Provider:    page,
	})
	require.NoError(t, err)
	return r
}

func TestNewRequiresProvider(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Addr: "127.0.0.1:0"})
	require.Error(t, err)
}

func TestSessionsShareThePage(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemoryStore()
	r := newRuntime(t, kv)
	assert.Equal(t, "127.0.0.1:0", r.Address())

	ctx := context.Background()
	first := r.Open(ctx)
	second := r.Open(ctx)
	t.Cleanup(first.Close)
	t.Cleanup(second.Close)
	assert.Equal(t, 2, r.Active())
	assert.True(t, first.Controller.IsHydrated())

	require.True(t, first.Controller.SetAccentColor(ctx, preference.AccentViolet))
	assert.Equal(t, preference.AccentViolet, second.Controller.AccentColor(), "delivered by the page bus without a poll")

	stored, ok, err := kv.Get(ctx, "accent-color")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "violet", stored)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	r := newRuntime(t, storage.NewMemoryStore())
	s := r.Open(context.Background())
	require.True(t, s.Controller.IsMounted())

	s.Close()
	s.Close()
	assert.False(t, s.Controller.IsMounted())
	assert.Equal(t, 0, r.Active())
}

func TestRunStopsWithContext(t *testing.T) {
	t.Parallel()

	r := newRuntime(t, storage.NewMemoryStore())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runtime did not stop")
	}
}
