package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/interfaces"
	"github.com/dmarkin/scorestream/internal/pkg/providerutil"
	"github.com/dmarkin/scorestream/internal/pkg/registry"
)

// Scheduler drives each provider on its own repeating timer. A provider's
// cycles are serialized (the next tick waits for the previous cycle), but
// different providers run fully concurrently. A failing cycle keeps the last
// good snapshot and is retried on the next tick, never inline.
type Scheduler struct {
	registry     *registry.Registry
	providers    []interfaces.Provider
	cycleTimeout time.Duration

	// OnFailure/OnRecovery receive consecutive-failure accounting for
	// operator alerting. Both optional.
	OnFailure  func(provider string, err error, consecutive int)
	OnRecovery func(provider string, afterFailures int)

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

func New(reg *registry.Registry, providers []interfaces.Provider, cycleTimeout time.Duration) *Scheduler {
	if cycleTimeout <= 0 {
		cycleTimeout = time.Minute
	}
	return &Scheduler{
		registry:     reg,
		providers:    providers,
		cycleTimeout: cycleTimeout,
	}
}

// Start launches one polling loop per provider, each with an immediate first
// run. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		slog.Warn("Scheduler already started, skipping")
		return
	}
	s.started = true

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, p := range s.providers {
		p := p
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(runCtx, p)
		}()
	}
	slog.Info("Scheduler started", "providers", len(s.providers))
}

// Stop cancels all polling loops and waits for in-flight cycles to finish or
// time out.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, p interfaces.Provider) {
	ticker := time.NewTicker(p.Interval())
	defer ticker.Stop()

	consecutive := 0
	s.runCycle(ctx, p, &consecutive)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Polling loop stopped", "provider", p.Name())
			return
		case <-ticker.C:
			s.runCycle(ctx, p, &consecutive)
		}
	}
}

// runCycle executes one poll cycle. It never propagates a failure: errors and
// panics are logged and the loop proceeds to the next tick.
func (s *Scheduler) runCycle(ctx context.Context, p interfaces.Provider, consecutive *int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Poll cycle panicked", "provider", p.Name(), "panic", r)
		}
	}()
	if ctx.Err() != nil {
		return
	}

	cycleCtx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
	defer cancel()

	start := time.Now()
	matches, err := p.Poll(cycleCtx)
	if err != nil {
		*consecutive++
		if errors.Is(err, providerutil.ErrRateLimited) {
			slog.Warn("Poll cycle rate limited", "provider", p.Name(), "consecutive_failures", *consecutive)
		} else {
			slog.Error("Poll cycle failed", "provider", p.Name(), "error", err, "consecutive_failures", *consecutive)
		}
		if s.OnFailure != nil {
			s.OnFailure(p.Name(), err, *consecutive)
		}
		// Last good snapshot stays in place; retry on the next tick.
		return
	}

	if *consecutive > 0 && s.OnRecovery != nil {
		s.OnRecovery(p.Name(), *consecutive)
	}
	*consecutive = 0

	s.registry.SetSnapshot(p.Source(), matches)
	slog.Debug("Poll cycle finished", "provider", p.Name(), "matches", len(matches), "duration", time.Since(start))
}
