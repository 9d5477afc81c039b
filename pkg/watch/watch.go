// Package watch re-runs a command whenever one of its input files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vnv-dev/vnv/pkg/telemetry"
)

// DefaultDelay is how long the watcher waits for changes to settle.
const DefaultDelay = 500 * time.Millisecond

// RunFunc is invoked on start and after every change.
type RunFunc func(ctx context.Context) error

// Watcher watches a set of files and debounces their change events.
type Watcher struct {
	logger *telemetry.Logger
	delay  time.Duration
}

// New creates a watcher. A non-positive delay selects DefaultDelay.
func New(logger *telemetry.Logger, delay time.Duration) *Watcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = telemetry.Nop()
	}
	return &Watcher{
		logger: logger.NewComponentLogger("watch"),
		delay:  delay,
	}
}

// Run calls fn once and then again after each burst of changes to paths,
// until ctx is cancelled. Errors from fn are logged and do not stop the
// watcher. Parent directories are watched so that files replaced by editors
// are still picked up.
func (w *Watcher) Run(ctx context.Context, paths []string, fn RunFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.logger.WithField("paths", paths).Info("Watching for changes")
	w.invoke(ctx, fn)

	// fn runs on this goroutine only, so runs never overlap.
	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.WithFile(event.Name).
				WithField("op", event.Op.String()).
				Debug("File changed")

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.delay, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			w.invoke(ctx, fn)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Error("Watcher error")
		}
	}
}

func (w *Watcher) invoke(ctx context.Context, fn RunFunc) {
	if err := fn(ctx); err != nil {
		w.logger.WithError(err).Warn("Run failed")
	}
}
