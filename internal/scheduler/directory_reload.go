package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/logger"
)

// Reloadable is anything whose data can be refreshed on demand.
type Reloadable interface {
	Reload(ctx context.Context) error
}

// DirectoryReloader re-runs the directory loads when triggered, and
// periodically when an interval is set.
type DirectoryReloader struct {
	target        Reloadable
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
	done          chan struct{}

	mu         sync.RWMutex
	lastRun    time.Time
	lastErr    error
	runs       int
	inProgress bool
}

// NewDirectoryReloader creates a reloader. interval <= 0 means manual only.
func NewDirectoryReloader(target Reloadable, log logger.Logger, interval time.Duration) *DirectoryReloader {
	return &DirectoryReloader{
		target:        target,
		logger:        log.With(logger.Component("reloader")),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: make(chan struct{}, 1),
		done:          make(chan struct{}),
	}
}

// Start runs the reload loop in the background. The initial load belongs to
// the startup sequence, so nothing is reloaded here until a trigger.
func (dr *DirectoryReloader) Start(ctx context.Context) {
	var tick <-chan time.Time
	if dr.interval > 0 {
		ticker := time.NewTicker(dr.interval)
		tick = ticker.C
		go func() {
			<-dr.done
			ticker.Stop()
		}()
	}

	go func() {
		defer close(dr.done)
		for {
			select {
			case <-tick:
				dr.run(ctx, "interval")
			case <-dr.manualTrigger:
				dr.logger.Info("manual reload triggered")
				dr.run(ctx, "manual")
			case <-dr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Trigger queues a reload. It returns false when one is already queued.
func (dr *DirectoryReloader) Trigger() bool {
	select {
	case dr.manualTrigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Stop stops the loop and waits for a running reload to finish.
func (dr *DirectoryReloader) Stop() {
	dr.stopOnce.Do(func() { close(dr.stopCh) })
	<-dr.done
}

func (dr *DirectoryReloader) run(ctx context.Context, cause string) {
	dr.mu.Lock()
	dr.inProgress = true
	dr.mu.Unlock()

	start := time.Now()
	err := dr.target.Reload(ctx)

	dr.mu.Lock()
	dr.inProgress = false
	dr.lastRun = time.Now()
	dr.lastErr = err
	dr.runs++
	dr.mu.Unlock()

	if err != nil {
		dr.logger.Error("failed to reload directory",
			logger.String("cause", cause),
			logger.Error(err))
		return
	}
	dr.logger.Info("directory reloaded",
		logger.String("cause", cause),
		logger.Duration("elapsed", time.Since(start)))
}

// Stats describes the reloader for the infra endpoint.
type Stats struct {
	Interval   time.Duration
	LastRun    time.Time
	LastError  string
	Runs       int
	InProgress bool
}

func (dr *DirectoryReloader) Stats() Stats {
	dr.mu.RLock()
	defer dr.mu.RUnlock()

	s := Stats{Interval: dr.interval, LastRun: dr.lastRun, Runs: dr.runs, InProgress: dr.inProgress}
	if dr.lastErr != nil {
		s.LastError = dr.lastErr.Error()
	}
	return s
}
