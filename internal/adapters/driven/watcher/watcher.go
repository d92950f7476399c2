// Package watcher re-runs an action when requirement source files change.
//
// Events are debounced: a burst of writes (an editor save, a Doorstop
// reorder touching many items) triggers a single run once the burst is over.
// Runs happen one at a time on the goroutine that called Run.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/reqif-cli/internal/logger"
)

// DefaultDebounce is the quiet period after the last event before a run.
const DefaultDebounce = 300 * time.Millisecond

// keepHidden lists dot-files that still count as source changes.
var keepHidden = map[string]bool{
	".doorstop.yml": true,
}

// Watcher watches a set of directory trees.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	ignore   map[string]bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a run.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithIgnore skips events for the given files, typically the export's own
// output, which would otherwise retrigger the run that wrote it.
func WithIgnore(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			w.ignore[cleanPath(p)] = true
		}
	}
}

// New starts watching paths.
func New(paths []string, opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("nothing to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: DefaultDebounce,
		ignore:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range paths {
		if err := w.addTree(p); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", p, err)
		}
	}
	return w, nil
}

// addTree watches root and every non-hidden directory below it.
// fsnotify watches are not recursive.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		logger.Debug("Watching %s", path)
		return nil
	})
}

// Run calls onChange after every debounced burst of relevant events until
// ctx is cancelled. A failing onChange is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context) error) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Change: %s %s", event.Op, event.Name)
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						logger.Warn("Watch %s: %v", event.Name, err)
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				logger.Error("%v", err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// relevant reports whether event should trigger a run.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") && !keepHidden[base] {
		return false
	}
	if strings.HasSuffix(base, "~") {
		return false
	}
	return !w.ignore[cleanPath(event.Name)]
}

func cleanPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
