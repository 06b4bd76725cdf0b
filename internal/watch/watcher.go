// SPDX-License-Identifier: MPL-2.0

// Package watch keeps a development installation fresh: it monitors the
// configuration fragments, package descriptors and package sources under
// the installation root and fires a debounced callback with the changed
// paths, coalescing rapid event bursts into a single rebuild.
package watch

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period after the last filesystem event
// before the callback fires. Editors that write-then-rename produce event
// bursts; the window folds them into one rebuild.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores excludes the generated output trees and the usual
// high-churn noise. dist/ and server/ must stay ignored or every rebuild
// would trigger the next one.
var defaultIgnores = []string{
	"dist/**",
	"server/**",
	"**/.git/**",
	"**/node_modules/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

// Config holds the parameters for a Watcher.
type Config struct {
	// RootDir is the installation root everything is watched under. Empty
	// defaults to the working directory.
	RootDir string

	// Patterns select which files trigger the callback, as doublestar
	// globs relative to RootDir. Empty watches every non-ignored file.
	Patterns []string

	// Ignore adds globs to the built-in ignore set.
	Ignore []string

	// Debounce overrides the quiet period; zero or negative keeps the
	// default.
	Debounce time.Duration

	// OnChange receives the deduplicated changed paths, relative to
	// RootDir, once the debounce window closes. nil is a no-op.
	OnChange func(ctx context.Context, changed []string) error

	Logger *log.Logger
}

// Watcher monitors an installation root and fires the debounced callback
// when matching files change. Run must be called exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	ignores  []string
	logger   *log.Logger
	debounce time.Duration
	rootDir  string
	started  atomic.Bool
}

// New creates a Watcher, registering every non-ignored directory under the
// root for monitoring.
func New(cfg Config) (*Watcher, error) {
	rootDir := cfg.RootDir
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		rootDir = wd
	}
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root directory: %w", err)
	}

	// Invalid globs fail construction instead of silently never matching.
	if err := validatePatterns(cfg.Patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		logger:   logger,
		debounce: debounce,
		rootDir:  absRoot,
	}
	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("close watcher after init failure", "err", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled, coalescing filesystem events into
// debounced callback invocations. Clean cancellation returns nil; fatal
// watcher errors propagate.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set and invokes OnChange. A skip-if-busy
	// guard keeps callbacks from overlapping when a rebuild outlasts the
	// debounce window; skipped events re-arm the timer so they are not
	// lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("rebuild still in progress, deferring")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Collect(maps.Keys(pending))
		clear(pending)
		mu.Unlock()
		slices.Sort(changed)

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("rebuild failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil && !localTimer.Stop() {
			select {
			case <-localTimer.C:
			default:
			}
		}
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("close fsnotify", "err", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}
			rel, err := filepath.Rel(w.rootDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			if w.isIgnored(rel) || !w.matchesPatterns(rel) {
				continue
			}
			// Extend the watch to directories created after startup, e.g.
			// a freshly installed package.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}
			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			// Resource exhaustion means the watcher cannot recover; see
			// the platform-specific classifiers.
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// addDirectories walks the root and registers every non-ignored directory.
// Pattern filtering happens per event, not here.
func (w *Watcher) addDirectories() error {
	walkErr := filepath.WalkDir(w.rootDir, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			// Inaccessible subtrees are skipped, not fatal.
			w.logger.Warn("skipping inaccessible path", "path", path, "err", walkDirErr)
			return nil //nolint:nilerr
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.rootDir, path)
		if relErr != nil {
			return nil //nolint:nilerr
		}
		if w.isIgnored(rel) || w.isIgnored(rel+"/") {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return
	}
	if w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}
	if addErr := w.fsw.Add(path); addErr != nil {
		w.logger.Warn("add new directory", "path", path, "err", addErr)
	}
}

func (w *Watcher) isIgnored(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// matchesPatterns reports whether rel matches a watch pattern. No
// patterns means everything matches.
func (w *Watcher) matchesPatterns(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.cfg.Patterns {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if _, err := doublestar.Match(pat, ""); err != nil {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, err)
		}
	}
	return nil
}
