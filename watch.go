// File: lixenwraith/flatlint/watch.go
package flatlint

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchOptions configures Watch
type WatchOptions struct {
	// Debounce coalesces bursts of file events into one rerun (minimum 50ms)
	Debounce time.Duration

	// OnResult receives every successful run
	OnResult func(res *Result)

	// OnError receives every failed run, the watcher keeps running
	OnError func(err error)
}

// DefaultWatchOptions returns sensible defaults for watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{Debounce: DefaultDebounce}
}

// watcher reruns a flattener when any of its sources change
type watcher struct {
	flattener *Flattener
	opts      WatchOptions
	fsw       *fsnotify.Watcher
	logger    *zap.Logger

	files map[string]bool // sources of the last run
	dirs  map[string]bool // directories registered with fsw
}

// Watch runs the flattener, then reruns it whenever a loaded source or a
// candidate root file changes, until ctx is cancelled. Run failures are
// reported through opts.OnError and do not stop the watcher.
func (f *Flattener) Watch(ctx context.Context, opts WatchOptions) error {
	if opts.Debounce < MinDebounce {
		opts.Debounce = MinDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	w := &watcher{
		flattener: f,
		opts:      opts,
		fsw:       fsw,
		logger:    f.logger,
		files:     make(map[string]bool),
		dirs:      make(map[string]bool),
	}

	w.rerun(ctx)
	return w.loop(ctx)
}

// loop dispatches file events until ctx is done
func (w *watcher) loop(ctx context.Context) error {
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
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Source changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			// Debounce rapid changes
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.rerun(ctx)
		}
	}
}

// rerun runs the flattener and refreshes the watched set
func (w *watcher) rerun(ctx context.Context) {
	res, err := w.flattener.Run(ctx)
	if err != nil {
		if w.opts.OnError != nil {
			w.opts.OnError(err)
		}
	} else if w.opts.OnResult != nil {
		w.opts.OnResult(res)
	}

	// Candidates are always watched so a created or renamed root is picked up
	files := make(map[string]bool)
	for _, name := range w.flattener.settings.Candidates {
		files[filepath.Join(w.flattener.baseDir, name)] = true
	}
	if res != nil {
		for _, source := range res.Sources {
			files[filepath.Clean(source)] = true
		}
	}
	w.track(files)
}

// track registers the directories of files with the watcher and drops
// directories no longer needed
func (w *watcher) track(files map[string]bool) {
	dirs := make(map[string]bool)
	for file := range files {
		dirs[filepath.Dir(file)] = true
	}

	for dir := range dirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			w.logger.Debug("Cannot watch directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		w.dirs[dir] = true
	}

	for dir := range w.dirs {
		if !dirs[dir] {
			_ = w.fsw.Remove(dir)
			delete(w.dirs, dir)
		}
	}

	w.files = files
}
