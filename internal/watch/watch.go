// Package watch rebuilds the site when its sources change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docbabel/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc runs one build. Errors are logged and the watcher keeps going.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers rebuilds for changes under a set of directories.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	rebuild  RebuildFunc
	ignore   []string

	// built receives the result of every rebuild; used by tests.
	built chan error
}

// New returns a Watcher over dirs. Paths listed in ignore (the site
// directory, typically) and everything below them never trigger a rebuild.
func New(rebuild RebuildFunc, dirs []string, ignore ...string) *Watcher {
	return &Watcher{dirs: dirs, debounce: DefaultDebounce, rebuild: rebuild, ignore: ignore}
}

// WithDebounce overrides DefaultDebounce.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run watches until ctx is done. Rebuilds run one at a time on a single
// worker; changes arriving during a rebuild schedule exactly one more.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range w.dirs {
		if err := w.addDirsRecursive(watcher, dir); err != nil {
			return err
		}
	}

	rebuildReq, trigger := w.setupDebouncer()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildWorker(ctx, rebuildReq)
	}()
	defer wg.Wait()

	slog.Info("Watching for changes", slog.Any("dirs", w.dirs))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) setupDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

func (w *Watcher) rebuildWorker(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			slog.Info("Change detected; rebuilding site")
			err := w.rebuild(ctx)
			if err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err))
			}
			if w.built != nil {
				select {
				case w.built <- err:
				default:
				}
			}
		}
	}
}

func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.shouldIgnore(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || w.ignored(path)) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, ig := range w.ignore {
		igAbs, err := filepath.Abs(ig)
		if err != nil {
			continue
		}
		if abs == igAbs || strings.HasPrefix(abs, igAbs+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// shouldIgnore reports whether a changed path must not trigger a rebuild:
// hidden and editor temporary files, and anything under an ignored path.
func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."),
		strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"),
		base == "Thumbs.db":
		return true
	}
	return w.ignored(path)
}
