package csslint

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits after the last change before
// re-linting.
const DefaultDebounce = 100 * time.Millisecond

// WatchFunc receives the result of every lint run started by Watch.
type WatchFunc func(result *LintResult, err error)

// Watch lints once, then re-lints whenever a stylesheet below the scan roots
// is written, created, removed or renamed. It blocks until ctx is done.
func Watch(ctx context.Context, config LintConfig, debounce time.Duration, fn WatchFunc) error {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range watchRoots(config.ScanPaths) {
		if err := watchDirRecursive(watcher, root); err != nil {
			// Keep going with the directories that could be added
			logger.Warn("failed to watch directory", zap.String("dir", root), zap.Error(err))
		}
	}

	runs := make(chan struct{}, 1)
	trigger := func() {
		select {
		case runs <- struct{}{}:
		default:
		}
	}
	trigger()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-runs:
			result, err := Lint(ctx, config)
			if ctx.Err() != nil {
				return nil
			}
			fn(result, err)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchDirRecursive(watcher, event.Name)
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if _, ok := LanguageForPath(event.Name); !ok {
				continue
			}

			logger.Debug("file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, trigger)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", zap.Error(err))
		}
	}
}

// watchRoots returns the static directory prefix of every scan pattern.
func watchRoots(patterns []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, pattern := range patterns {
		root := pattern
		if info, err := os.Stat(pattern); err != nil || !info.IsDir() {
			root, _ = doublestar.SplitPattern(filepath.ToSlash(pattern))
			root = filepath.FromSlash(root)
		}
		if root == "" {
			root = "."
		}
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	return roots
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
