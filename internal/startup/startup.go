package startup

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/bankfinder/internal/logger"
)

// Steps are the loads run at boot. Nil steps are skipped.
type Steps struct {
	LoadTheme     func(ctx context.Context)
	LoadBanks     func(ctx context.Context) error
	LoadBranches  func(ctx context.Context) error
	LoadFavorites func(ctx context.Context)
}

type Options struct {
	// SplashDelay is waited after the loads settle, success or not.
	SplashDelay time.Duration
	// ReadyTimeout opens the gate even if a load hangs. Zero disables it.
	ReadyTimeout time.Duration
}

const (
	ReasonLoaded  = "loaded"
	ReasonTimeout = "timeout"
)

// Sequence loads the theme, then banks, branches and favorites in parallel,
// and opens a readiness gate when either the loads settle plus SplashDelay
// or ReadyTimeout elapses. A failed load never keeps the gate closed.
type Sequence struct {
	steps Steps
	opts  Options
	log   logger.Logger

	ready   chan struct{}
	settled chan struct{}
	once    sync.Once

	mu      sync.RWMutex
	reason  string
	loadErr error
}

func New(steps Steps, opts Options, log logger.Logger) *Sequence {
	return &Sequence{
		steps:   steps,
		opts:    opts,
		log:     log.With(logger.Component("startup")),
		ready:   make(chan struct{}),
		settled: make(chan struct{}),
	}
}

// Start runs the sequence in the background and returns immediately.
func (s *Sequence) Start(ctx context.Context) {
	if s.opts.ReadyTimeout > 0 {
		timer := time.NewTimer(s.opts.ReadyTimeout)
		go func() {
			defer timer.Stop()
			select {
			case <-timer.C:
				s.open(ReasonTimeout)
			case <-s.ready:
			case <-ctx.Done():
			}
		}()
	}

	go s.run(ctx)
}

func (s *Sequence) run(ctx context.Context) {
	start := time.Now()

	if s.steps.LoadTheme != nil {
		s.steps.LoadTheme(ctx)
	}

	var g errgroup.Group
	if s.steps.LoadBanks != nil {
		g.Go(func() error { return s.steps.LoadBanks(ctx) })
	}
	if s.steps.LoadBranches != nil {
		g.Go(func() error { return s.steps.LoadBranches(ctx) })
	}
	if s.steps.LoadFavorites != nil {
		g.Go(func() error {
			s.steps.LoadFavorites(ctx)
			return nil
		})
	}
	err := g.Wait()

	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
	close(s.settled)

	if err != nil {
		s.log.Error("error initializing app", logger.Error(err), logger.Duration("elapsed", time.Since(start)))
	} else {
		s.log.Info("initial loads complete", logger.Duration("elapsed", time.Since(start)))
	}

	if s.opts.SplashDelay > 0 {
		timer := time.NewTimer(s.opts.SplashDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-s.ready:
			return
		case <-ctx.Done():
			return
		}
	}
	s.open(ReasonLoaded)
}

func (s *Sequence) open(reason string) {
	s.once.Do(func() {
		s.mu.Lock()
		s.reason = reason
		s.mu.Unlock()
		close(s.ready)

		if reason == ReasonTimeout {
			s.log.Warn("ready timeout elapsed before initial loads settled")
		} else {
			s.log.Info("ready")
		}
	})
}

// Ready is closed once the gate opens.
func (s *Sequence) Ready() <-chan struct{} { return s.ready }

// Settled is closed once every initial load has returned.
func (s *Sequence) Settled() <-chan struct{} { return s.settled }

func (s *Sequence) IsReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Reason tells why the gate opened, empty while closed.
func (s *Sequence) Reason() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// Err is the first error of the initial loads, nil until they settle.
func (s *Sequence) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Wait blocks until the gate opens or ctx is done.
func (s *Sequence) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
