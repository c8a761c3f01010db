// Package watch reruns generation when C# sources under a root change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/sghaida/typedstrings/internal/csharp"
)

// Options configures a Watcher.
type Options struct {
	Root    string
	Include []string
	// Exclude lists directory names never watched, e.g. bin and obj.
	Exclude []string
	// Ignore lists directories whose events are dropped, typically the
	// output directory so that writes do not retrigger generation.
	Ignore []string

	Debounce time.Duration
	Logger   *zap.Logger

	// OnChange receives the sorted set of sources that changed during one
	// debounce window. Errors are logged and watching continues.
	OnChange func(ctx context.Context, changed []string) error
}

// Stats counts watcher activity.
type Stats struct {
	Events   int
	Runs     int
	Failures int
	Errors   int
}

// Watcher debounces fsnotify events into OnChange calls.
type Watcher struct {
	opts    Options
	logger  *zap.Logger
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]struct{}
	stats   Stats
}

// New creates a watcher over every directory below opts.Root.
func New(opts Options) (*Watcher, error) {
	if opts.OnChange == nil {
		return nil, errors.New("watch: OnChange is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.Include) == 0 {
		opts.Include = []string{".cs"}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		opts:    opts,
		logger:  opts.Logger,
		watcher: fw,
		pending: make(map[string]struct{}),
	}
	if err := w.addTree(opts.Root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// WatchedDirs returns the directories currently watched, sorted.
func (w *Watcher) WatchedDirs() []string {
	dirs := w.watcher.WatchList()
	sort.Strings(dirs)
	return dirs
}

// Run blocks until ctx is done, then closes the underlying watcher. It
// returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("close watcher", zap.Error(err))
		}
	}()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handle(event) {
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-timer.C:
			w.flush(ctx)
		}
	}
}

// handle records a relevant event and reports whether the debounce timer
// should restart.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if w.ignored(event.Name) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watch new dir", zap.Error(err))
			}
			return false
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if !csharp.IsSource(event.Name, w.opts.Include) {
		return false
	}

	w.logger.Debug("source changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[event.Name] = struct{}{}
	w.stats.Events++
	return true
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	clear(w.pending)
	if len(changed) > 0 {
		w.stats.Runs++
	}
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)

	if err := w.opts.OnChange(ctx, changed); err != nil {
		w.logger.Error("regenerate failed", zap.Error(err), zap.Strings("changed", changed))
		w.mu.Lock()
		w.stats.Failures++
		w.mu.Unlock()
	}
}

func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.opts.Ignore {
		rel, err := filepath.Rel(dir, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addTree watches root and every directory below it that is not excluded
// or ignored. A path that is not a directory is a no-op.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && slices.Contains(w.opts.Exclude, d.Name()) {
			return filepath.SkipDir
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		w.logger.Debug("watching", zap.String("dir", path))
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}
