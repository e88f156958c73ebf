// Package watch re-runs verification whenever an input document
// changes. Filesystem events are debounced so editors that write a file
// several times in quick succession trigger one run.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default delay before acting on changes.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a fixed set of document files and invokes a callback
// after changes settle.
type Watcher struct {
	files    map[string]bool
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   bool
}

// NewWatcher creates a watcher over the given files.
func NewWatcher(files []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	watched := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		watched[abs] = true
	}

	return &Watcher{
		files:    watched,
		debounce: debounce,
		logger:   logger,
		watcher:  fsw,
	}, nil
}

// Run watches until the context is cancelled, calling onChange after
// each settled batch of changes to the watched files. Directories are
// watched rather than the files themselves so atomic rename-based saves
// are still observed.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	dirs := make(map[string]bool)
	for file := range w.files {
		dirs[filepath.Dir(file)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("failed to watch directory", slog.String("path", dir), slog.String("error", err.Error()))
		} else {
			w.logger.Debug("watching directory", slog.String("path", dir))
		}
	}

	defer w.watcher.Close()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.pendingMu.Lock()
			fire := w.pending
			w.pending = false
			w.pendingMu.Unlock()
			if fire {
				onChange()
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		abs = event.Name
	}
	if !w.files[abs] {
		return
	}

	w.logger.Debug("document changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()
}
