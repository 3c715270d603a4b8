package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/bankfinder/internal/logger"
)

// DataWatcher asks for a directory reload when the dataset file changes on
// disk. The parent directory is watched so editors that replace the file
// on save are seen too.
type DataWatcher struct {
	path     string
	trigger  func() bool
	debounce time.Duration
	logger   logger.Logger

	watcher  *fsnotify.Watcher
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}

	mu     sync.Mutex
	events int
}

// NewDataWatcher watches path and calls trigger once per burst of changes.
func NewDataWatcher(path string, trigger func() bool, debounce time.Duration, log logger.Logger) (*DataWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &DataWatcher{
		path:     abs,
		trigger:  trigger,
		debounce: debounce,
		logger:   log.With(logger.Component("data-watcher")),
		watcher:  w,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

func (dw *DataWatcher) Start(ctx context.Context) {
	dw.logger.Info("watching dataset", logger.String("path", dw.path))
	go dw.run(ctx)
}

func (dw *DataWatcher) run(ctx context.Context) {
	defer close(dw.done)

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
			return
		case <-dw.stopCh:
			return

		case ev, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !dw.relevant(ev) {
				continue
			}
			dw.mu.Lock()
			dw.events++
			dw.mu.Unlock()

			if timer == nil {
				timer = time.NewTimer(dw.debounce)
			} else {
				timer.Reset(dw.debounce)
			}
			fire = timer.C

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.logger.Warn("watcher error", logger.Error(err))

		case <-fire:
			fire = nil
			if dw.trigger() {
				dw.logger.Info("dataset changed, reload queued")
			} else {
				dw.logger.Debug("dataset changed, reload already queued")
			}
		}
	}
}

func (dw *DataWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != dw.path {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

// Events counts the relevant filesystem events seen so far.
func (dw *DataWatcher) Events() int {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.events
}

// Stop ends the loop and releases the watcher. Start must have been called.
// Safe to call twice.
func (dw *DataWatcher) Stop() {
	dw.stopOnce.Do(func() {
		close(dw.stopCh)
		<-dw.done
		if err := dw.watcher.Close(); err != nil {
			dw.logger.Warn("failed to close watcher", logger.Error(err))
		}
	})
}
