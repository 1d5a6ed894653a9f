// Package watch monitors the source documentation tree and triggers republish
// callbacks after a debounce window, so bursts of generator writes collapse
// into a single run.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docpub/internal/logfields"
)

// SourceWatcher monitors a source tree for changes and triggers republishes.
type SourceWatcher struct {
	sourceDir    string
	watcher      *fsnotify.Watcher
	trigger      func()
	stopChan     chan struct{}
	changeChan   chan struct{}
	debounceTime time.Duration
}

// NewSourceWatcher creates a watcher over sourceDir. The trigger callback runs
// once per debounced change burst.
func NewSourceWatcher(sourceDir string, debounce time.Duration, trigger func()) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absPath, err := filepath.Abs(sourceDir)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}

	return &SourceWatcher{
		sourceDir:    absPath,
		watcher:      watcher,
		trigger:      trigger,
		stopChan:     make(chan struct{}),
		changeChan:   make(chan struct{}, 1),
		debounceTime: debounce,
	}, nil
}

// Start begins monitoring. fsnotify watches are not recursive, so every
// directory in the tree is added individually and newly created directories
// are added as their create events arrive.
func (w *SourceWatcher) Start(ctx context.Context) error {
	if err := w.addRecursive(w.sourceDir); err != nil {
		return fmt.Errorf("failed to watch source tree %s: %w", w.sourceDir, err)
	}

	slog.Info("Watching source tree", logfields.Source(w.sourceDir))

	go w.watchLoop(ctx)
	go w.debounceLoop(ctx)

	return nil
}

// Stop stops the watcher.
func (w *SourceWatcher) Stop() {
	close(w.stopChan)
	if err := w.watcher.Close(); err != nil {
		slog.Error("Error closing file watcher", logfields.Error(err))
	}
}

func (w *SourceWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// watchLoop forwards filesystem events into the debounce channel.
func (w *SourceWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				// New directories need their own watch before their children
				// produce events.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			slog.Debug("Source change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			select {
			case w.changeChan <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// debounceLoop waits for the quiet period after the last change, then triggers.
func (w *SourceWatcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-w.changeChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounceTime)
			timerC = timer.C
		case <-timerC:
			timerC = nil
			slog.Info("Source tree changed, triggering republish", logfields.Source(w.sourceDir))
			w.trigger()
		}
	}
}
