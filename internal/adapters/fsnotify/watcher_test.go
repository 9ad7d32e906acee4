package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// fsnotify Watcher Adapter: detect changes to the input files, trigger a rescan
// Expectation: only the watched files fire, each within well under a second
// =============================================================================

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

// tempDir resolves symlinks so event paths compare equal on every platform.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func startWatcher(t *testing.T, paths ...string) (*Watcher, chan string) {
	t.Helper()
	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(paths, func(path string) {
		changed <- path
	}))
	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return w, changed
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := tempDir(t)
	doc := filepath.Join(dir, "ams.txt")
	require.NoError(t, os.WriteFile(doc, []byte("line\n"), 0644))

	_, changed := startWatcher(t, doc)
	require.NoError(t, os.WriteFile(doc, []byte("line\nmore\n"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for file change")
	assert.Equal(t, doc, path)
}

func TestWatcher_DetectsFileAppearing(t *testing.T) {
	// A document that was missing at startup is picked up once created.
	dir := tempDir(t)
	doc := filepath.Join(dir, "late.txt")

	_, changed := startWatcher(t, doc)
	require.NoError(t, os.WriteFile(doc, []byte("x\n"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for new file")
	assert.Equal(t, doc, path)
}

func TestWatcher_DetectsDeletedFile(t *testing.T) {
	dir := tempDir(t)
	doc := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(doc, []byte("x\n"), 0644))

	_, changed := startWatcher(t, doc)
	require.NoError(t, os.Remove(doc))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for deleted file")
	assert.Equal(t, doc, path)
}

func TestWatcher_IgnoresUnwatchedSiblings(t *testing.T) {
	dir := tempDir(t)
	doc := filepath.Join(dir, "deny.txt")
	require.NoError(t, os.WriteFile(doc, []byte("acme\n"), 0644))

	_, changed := startWatcher(t, doc)

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "deny.txt.swp"), []byte("x"), 0644)

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "siblings of a watched file must not fire")

	require.NoError(t, os.WriteFile(doc, []byte("acme\nglobex\n"), 0644))
	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok)
	assert.Equal(t, doc, path)
}

func TestWatcher_MultipleDirectories(t *testing.T) {
	a, b := tempDir(t), tempDir(t)
	docA := filepath.Join(a, "a.txt")
	docB := filepath.Join(b, "b.txt")

	_, changed := startWatcher(t, docA, docB)
	require.NoError(t, os.WriteFile(docB, []byte("x"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok)
	assert.Equal(t, docB, path)
}

func TestWatcher_MissingParentDirectory(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch([]string{filepath.Join(t.TempDir(), "no", "such", "file.txt")}, func(string) {})
	assert.Error(t, err)
	assert.Error(t, w.Watch(nil, func(string) {}))
}

func TestWatcher_StopCleanup(t *testing.T) {
	// After Stop(), no more callbacks fire.
	dir := tempDir(t)
	doc := filepath.Join(dir, "after_stop.txt")

	w, err := NewWatcher()
	require.NoError(t, err)

	callCount := 0
	var mu sync.Mutex
	require.NoError(t, w.Watch([]string{doc}, func(string) {
		mu.Lock()
		callCount++
		mu.Unlock()
	}))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop())

	os.WriteFile(doc, []byte("nope"), 0644)
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	assert.Zero(t, callCount, "callbacks fired after Stop()")
	mu.Unlock()

	// Double-stop should be safe
	assert.NoError(t, w.Stop())
}
