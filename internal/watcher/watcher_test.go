package watcher_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vigil/internal/log"
	"github.com/zjrosen/vigil/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("test"), 0o644))

	onChange := startWatcher(t, path)

	// Rapid writes should coalesce into a single notification
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("test%d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	otherPath := filepath.Join(dir, "notes.txt.swp")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	// Pre-create the other file so writes to it are just Write events
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0o644))

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0o644))

	select {
	case <-onChange:
		t.Fatal("should not notify for other files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_NotifiesWhenFileCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for file creation")
	}
}

func TestWatcher_NotifiesOnReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	tmp := filepath.Join(dir, ".notes.txt.tmp")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(tmp, []byte("b"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification after rename over the file")
	}
}

func TestWatcher_RelativePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("rel.txt", []byte("a"), 0o644))

	onChange := startWatcher(t, "rel.txt")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "rel.txt"), []byte("b"), 0o644))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for relative path")
	}
}

func TestWatcher_Stop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("test"), 0o644))

	var out bytes.Buffer
	w, err := watcher.New(watcher.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
		Logger:      log.NewWriter(&out),
	})
	require.NoError(t, err)

	_, err = w.Start()
	require.NoError(t, err)
	require.Contains(t, out.String(), "[watcher] Watching")

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop(), "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "gone", "f.txt")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := watcher.New(watcher.Config{})
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/test/notes.txt")

	assert.Equal(t, "/test/notes.txt", cfg.Path)
	assert.Equal(t, 200*time.Millisecond, cfg.DebounceDur)
	assert.Nil(t, cfg.Logger)
}
