// Package watch triggers addon reloads when module sources change on disk.
// Rapid bursts of filesystem events (editor save, git checkout) collapse
// into a single reload through a debounce window.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/addonloadgo/internal/addon"
	"github.com/vk/addonloadgo/internal/ctxlog"
)

// DefaultDebounce is the quiet period required before a reload fires.
const DefaultDebounce = 250 * time.Millisecond

// ReloadFunc is invoked once per debounced change burst.
type ReloadFunc func(ctx context.Context) error

// Watcher observes an addon tree and calls the reload function when module
// sources or the manifest change.
type Watcher struct {
	root     string
	debounce time.Duration
	reload   ReloadFunc

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
}

// New creates a watcher over the addon rooted at root. A non-positive
// debounce falls back to DefaultDebounce.
func New(root string, debounce time.Duration, reload ReloadFunc) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     root,
		debounce: debounce,
		reload:   reload,
		fsw:      fsw,
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks processing filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Watching addon tree for changes.", "root", w.root, "debounce", w.debounce)

	fired := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return w.fsw.Close()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event, fired)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("Filesystem watcher error.", "error", err)

		case <-fired:
			logger.Info("Change burst settled, reloading addon.")
			if err := w.reload(ctx); err != nil {
				// Reload failures are reported and watching continues; the
				// next save gets another chance.
				logger.Error("Reload failed.", "error", err)
			}
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event, fired chan<- struct{}) {
	logger := ctxlog.FromContext(ctx)

	// New directories must be registered or changes inside them go unseen.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				logger.Error("Failed to watch new directory.", "dir", event.Name, "error", err)
			}
		}
	}

	if !w.relevant(event.Name) {
		return
	}
	logger.Debug("Module source changed.", "path", event.Name, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
}

// relevant reports whether a changed path can affect the loaded addon:
// module sources and the manifest count, everything else is noise.
func (w *Watcher) relevant(path string) bool {
	if filepath.Base(path) == addon.ManifestFileName {
		return true
	}
	return strings.HasSuffix(path, ".hcl")
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
