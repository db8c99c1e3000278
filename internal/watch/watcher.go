// SPDX-License-Identifier: MPL-2.0

// Package watch notices edits to a puzzle corpus and calls back once the
// tree has been quiet for a debounce period, so that puzzlec can rebuild
// the catalog while authors work.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is unset.
const DefaultDebounce = 300 * time.Millisecond

// ErrAlreadyRunning is returned by a second call to Run.
var ErrAlreadyRunning = errors.New("watch: already running")

// defaultIgnores are never reported: VCS metadata, cargo build output,
// editor droppings and bundle temp files.
var defaultIgnores = []string{
	"**/.git/**",
	"**/target/**",
	"**/.idea/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
	"**/.puzzles-*.tmp",
}

type (
	// Config configures a Watcher.
	Config struct {
		// Root is the corpus directory. Empty means the working directory.
		Root string
		// Patterns select the files that count as changes (doublestar,
		// relative to Root). Empty selects every file.
		Patterns []string
		// Ignore is added to the built-in ignore list.
		Ignore []string
		// Debounce defaults to DefaultDebounce.
		Debounce time.Duration
		Logger   *slog.Logger
		// OnChange receives the sorted relative paths changed since the
		// previous call. It never runs concurrently with itself.
		OnChange func(ctx context.Context, changed []string) error
	}

	// Watcher watches every non-ignored directory under Root.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		root     string
		ignores  []string
		debounce time.Duration
		logger   *slog.Logger
		started  atomic.Bool
		closed   sync.Once
	}
)

// New validates cfg and registers the directory tree under Root.
func New(cfg Config) (*Watcher, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", root)
	}

	for _, pat := range slices.Concat(cfg.Patterns, cfg.Ignore) {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		root:     root,
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		debounce: cfg.Debounce,
		logger:   cfg.Logger,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	if err := w.addTree(root); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the watcher. Run closes it on return; Close is for
// watchers that never ran.
func (w *Watcher) Close() error {
	var err error
	w.closed.Do(func() { err = w.fsw.Close() })
	return err
}

// Run processes events until ctx ends, which is a clean nil return.
// Callback errors are logged, not returned. Only resource exhaustion of
// the underlying watcher stops Run early.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer w.Close() //nolint:errcheck // nothing left to report to

	var (
		mu      sync.Mutex
		pending = map[string]struct{}{}
		timer   *time.Timer
		busy    atomic.Bool
		wg      sync.WaitGroup
	)
	defer wg.Wait()

	flush := func() {
		defer wg.Done()
		if ctx.Err() != nil {
			return
		}
		if !busy.CompareAndSwap(false, true) {
			w.logger.Debug("rebuild still running, deferring changes")
			mu.Lock()
			wg.Add(1)
			timer = time.AfterFunc(w.debounce, flush)
			mu.Unlock()
			return
		}
		defer busy.Store(false)

		mu.Lock()
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()
		if len(changed) == 0 || w.cfg.OnChange == nil {
			return
		}
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.logger.Error("rebuild failed", "error", err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event stream closed")
			}
			rel, ok := w.relevant(evt.Name)
			if !ok {
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.addNewDir(evt.Name)
			}
			w.logger.Debug("corpus changed", "path", rel, "op", evt.Op.String())

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil || !timer.Stop() {
				wg.Add(1)
			}
			timer = time.AfterFunc(w.debounce, flush)
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error stream closed")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: %w", err)
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// relevant maps an event path to its slash-separated root-relative form
// and reports whether it should trigger a rebuild.
func (w *Watcher) relevant(name string) (string, bool) {
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if w.ignored(rel) {
		return "", false
	}
	if len(w.cfg.Patterns) == 0 {
		return rel, true
	}
	return rel, matchAny(w.cfg.Patterns, rel)
}

func (w *Watcher) ignored(rel string) bool {
	return matchAny(w.ignores, rel) || matchAny(w.ignores, rel+"/")
}

// addTree registers dir and every non-ignored directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("not watching inaccessible path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(w.root, path); err == nil && rel != "." && w.ignored(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

// addNewDir extends the watch to a directory created after New.
func (w *Watcher) addNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(path); err != nil {
		w.logger.Warn("cannot watch new directory", "path", path, "error", err)
	}
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}
