package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	w, err := NewWatcher([]string{file}, 10*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func() {}) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestRun_FiresOnWatchedFileChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	other := filepath.Join(dir, "unrelated.md")
	require.NoError(t, os.WriteFile(file, []byte("v1"), 0644))

	w, err := NewWatcher([]string{file}, 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var fired atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { fired.Add(1) })
	}()

	// Let the watcher register the directory before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("noise"), 0644))
	require.NoError(t, os.WriteFile(file, []byte("v2"), 0644))

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		3*time.Second, 20*time.Millisecond)

	cancel()
	<-done
}

func TestHandleEvent_IgnoresUnwatchedFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	w, err := NewWatcher([]string{file}, 0, nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.Equal(t, DefaultDebounce, w.debounce, "non-positive debounce falls back to the default")

	abs, err := filepath.Abs(file)
	require.NoError(t, err)
	assert.True(t, w.files[abs])
	assert.False(t, w.files[filepath.Join(dir, "other.md")])
}
