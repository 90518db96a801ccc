package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/irengine/internal/debug"
	"github.com/standardbeagle/irengine/internal/scope"
)

// DefaultWatchDebounce mirrors the teacher's Index.WatchDebounceMs default
// (internal/config/config.go's 300ms), generalized as a package constant
// since the orchestrator doesn't carry a *config.Config of its own.
const DefaultWatchDebounce = 300 * time.Millisecond

// WatchAndRebuild watches root for file system changes and triggers a
// scope.Mode-governed incremental Rebuild on every debounced batch. It
// generalizes the teacher's FileWatcher/eventDebouncer
// (internal/indexing/watcher.go): recursive directory watch with
// symlink-cycle protection, one flush timer per quiet period, events
// grouped into an added/modified/deleted ChangeSet rather than the
// teacher's create/write/remove callback triple. The returned channel
// receives one RebuildOutcome per flush and is closed when ctx is done.
func (o *Orchestrator) WatchAndRebuild(ctx context.Context, root string, mode scope.Mode, debounce time.Duration) (<-chan RebuildOutcome, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addWatchesRecursive(watcher, root, o.opts.Exclude); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan RebuildOutcome)
	d := &watchDebouncer{pending: scope.ChangeSet{Added: map[string]bool{}, Modified: map[string]bool{}, Deleted: map[string]bool{}}}

	go func() {
		defer close(out)
		defer watcher.Close()

		var prev *BuildResult
		var timer *time.Timer
		flush := func() {
			cs := d.drain()
			if len(cs.Added) == 0 && len(cs.Modified) == 0 && len(cs.Deleted) == 0 {
				return
			}
			outcome, err := o.Rebuild(ctx, root, cs, mode, prev)
			if err != nil {
				debug.LogBuild("incremental rebuild failed: %v", err)
				return
			}
			prev = outcome.Result
			select {
			case out <- *outcome:
			case <-ctx.Done():
			}
		}

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				relPath, err := filepath.Rel(root, event.Name)
				if err != nil {
					relPath = event.Name
				}
				relPath = filepath.ToSlash(relPath)

				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if event.Op&fsnotify.Create != 0 {
						_ = addWatchesRecursive(watcher, event.Name, o.opts.Exclude)
					}
					continue
				}

				switch {
				case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
					d.add(relPath, scope.ChangeSet{Deleted: map[string]bool{relPath: true}})
				case event.Op&fsnotify.Create != 0:
					d.add(relPath, scope.ChangeSet{Added: map[string]bool{relPath: true}})
				case event.Op&fsnotify.Write != 0:
					d.add(relPath, scope.ChangeSet{Modified: map[string]bool{relPath: true}})
				default:
					continue
				}

				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, flush)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				debug.LogBuild("watch error: %v", err)
			}
		}
	}()

	return out, nil
}

// addWatchesRecursive walks root adding an fsnotify watch to every
// directory not matched by exclude, with the same symlink-cycle guard as
// discoverFiles.
func addWatchesRecursive(w *fsnotify.Watcher, root string, exclude []string) error {
	visited := make(map[string]bool)
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if visited[realPath] {
			return filepath.SkipDir
		}
		visited[realPath] = true

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}
		if path != root && matchesAny(exclude, filepath.ToSlash(relPath)+"/") {
			return filepath.SkipDir
		}

		if err := w.Add(path); err != nil {
			debug.LogBuild("failed to watch %s: %v", path, err)
		}
		return nil
	})
}

// watchDebouncer accumulates the latest event per path between flushes,
// same last-write-wins semantics as the teacher's eventDebouncer.events map.
type watchDebouncer struct {
	mu      sync.Mutex
	pending scope.ChangeSet
}

func (d *watchDebouncer) add(path string, single scope.ChangeSet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pending.Added, path)
	delete(d.pending.Modified, path)
	delete(d.pending.Deleted, path)
	for p := range single.Added {
		d.pending.Added[p] = true
	}
	for p := range single.Modified {
		d.pending.Modified[p] = true
	}
	for p := range single.Deleted {
		d.pending.Deleted[p] = true
	}
}

func (d *watchDebouncer) drain() scope.ChangeSet {
	d.mu.Lock()
	defer d.mu.Unlock()
	cs := d.pending
	d.pending = scope.ChangeSet{Added: map[string]bool{}, Modified: map[string]bool{}, Deleted: map[string]bool{}}
	return cs
}
