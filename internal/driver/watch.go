package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the event bursts editors produce on save.
const DefaultDebounce = 250 * time.Millisecond

// Watch re-lints *.nu files under root as they change. Changes are
// debounced and batched; after each batch onRun receives the lint
// result for the changed files. Blocks until ctx is cancelled (which
// returns nil) or the watcher fails.
func Watch(ctx context.Context, root string, debounce time.Duration, opts Options, onRun func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchTree(watcher, root); err != nil {
		return fmt.Errorf("setting up watch: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories join the watch so files created in
			// them are seen too.
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watchTree(watcher, event.Name)
					continue
				}
			}
			if !strings.HasSuffix(event.Name, ".nu") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			pending[event.Name] = struct{}{}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if opts.Warn != nil {
				fmt.Fprintf(opts.Warn, "watch error: %v\n", watchErr)
			}

		case <-timer.C:
			batch := drainPending(pending)
			if len(batch) == 0 {
				continue
			}
			res, runErr := LintFiles(ctx, batch, opts)
			if runErr != nil {
				if ctx.Err() != nil {
					return nil
				}
				return runErr
			}
			onRun(res)
		}
	}
}

func watchTree(watcher *fsnotify.Watcher, root string) error {
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
		return watcher.Add(path)
	})
}

// drainPending empties the pending set, keeping only paths that still
// exist: removes and renames queue their old name, which is gone by
// the time the batch runs.
func drainPending(pending map[string]struct{}) []string {
	batch := make([]string, 0, len(pending))
	for path := range pending {
		delete(pending, path)
		if _, err := os.Stat(path); err == nil {
			batch = append(batch, path)
		}
	}
	sort.Strings(batch)
	return batch
}
