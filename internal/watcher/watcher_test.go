package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mockbanker/mockbanker/internal/pubsub"
	"github.com/mockbanker/mockbanker/internal/watcher"
)

func start(t *testing.T, path string) (<-chan pubsub.Event[string], *watcher.Watcher) {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := w.Broker().Subscribe(ctx)
	require.NoError(t, w.Start())
	return events, w
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockbanker.db")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	events, _ := start(t, path)

	for i := range 10 {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprint(i)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case ev := <-events:
		require.Equal(t, pubsub.ReloadedEvent, ev.Type)
		require.Equal(t, path, ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("expected a reload event")
	}

	select {
	case <-events:
		t.Fatal("writes should coalesce into one event")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_WALFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockbanker.db")
	events, _ := start(t, path)

	require.NoError(t, os.WriteFile(path+"-wal", []byte("wal"), 0o600))
	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("expected a reload event for the WAL file")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	events, _ := start(t, filepath.Join(dir, "mockbanker.db"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mockbanker.db.bak"), []byte("x"), 0o600))
	select {
	case <-events:
		t.Fatal("unexpected event")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopClosesBroker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockbanker.db")
	events, w := start(t, path)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription should close on stop")
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "nope", "mockbanker.db")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()
	require.Error(t, w.Start())
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/tmp/x.db")
	require.Equal(t, "/tmp/x.db", cfg.Path)
	require.Equal(t, 500*time.Millisecond, cfg.Debounce)
}
