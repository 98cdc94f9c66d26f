// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"github.com/jeranaias/twin-tui/internal/model"
)

// DefaultInterval is the time between scheduled fetches.
const DefaultInterval = 5 * time.Second

// Fetcher returns a snapshot, or nil when none could be fetched.
// *api.Client satisfies it.
type Fetcher interface {
	FetchDashboard(ctx context.Context) *model.Snapshot
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) *model.Snapshot

// FetchDashboard calls f.
func (f FetcherFunc) FetchDashboard(ctx context.Context) *model.Snapshot {
	return f(ctx)
}

// Options configures a Poller.
type Options struct {
	// Interval between scheduled fetches (default: 5s). The scheduler
	// works in whole seconds.
	Interval time.Duration

	// OnUpdate runs after a snapshot is applied.
	OnUpdate func(*model.Snapshot)

	// OnError runs after a failed fetch with the consecutive failure count.
	OnError func(failures int)

	// RefreshEvery limits manual refreshes (default: one per second).
	RefreshEvery time.Duration

	Logger *slog.Logger
}

// Poller refreshes the dashboard snapshot on a schedule.
// It is safe for concurrent use.
type Poller struct {
	fetcher Fetcher
	opts    Options
	limiter *rate.Limiter
	log     *slog.Logger

	seq atomic.Uint64

	// applyMu serializes applying results and running callbacks, so stop
	// can wait for them.
	applyMu sync.Mutex
	stopped bool

	mu          sync.RWMutex
	snap        *model.Snapshot
	applied     uint64
	failures    int
	lastSuccess time.Time
}

// New creates a poller holding DefaultSnapshot until the first fetch
// succeeds.
func New(fetcher Fetcher, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.RefreshEvery <= 0 {
		opts.RefreshEvery = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		fetcher: fetcher,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.RefreshEvery), 1),
		log:     logger.With("component", "dashboard"),
		snap:    model.DefaultSnapshot(),
	}
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start fetches immediately and then on every interval until the returned
// stop function is called or ctx ends. Stop cancels in-flight fetches and
// waits for running callbacks; after it returns nothing more is applied.
// Stop may be called more than once.
func (p *Poller) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)

	sched := cron.New()
	spec := fmt.Sprintf("@every %s", p.opts.Interval)
	if _, err := sched.AddFunc(spec, func() { p.Tick(ctx) }); err != nil {
		// Only reachable with a malformed interval; poll once and stay idle.
		p.log.Error("invalid poll schedule", "spec", spec, "error", err)
	}
	sched.Start()
	go p.Tick(ctx)

	p.log.Debug("poller started", "interval", p.opts.Interval)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-sched.Stop().Done()

			p.applyMu.Lock()
			p.stopped = true
			p.applyMu.Unlock()
			p.log.Debug("poller stopped")
		})
	}
}

// Tick performs one fetch and applies the result if it is the newest seen.
// It reports whether the snapshot was replaced.
func (p *Poller) Tick(ctx context.Context) bool {
	seq := p.seq.Add(1)
	snap := p.fetcher.FetchDashboard(ctx)

	p.applyMu.Lock()
	defer p.applyMu.Unlock()
	if p.stopped || ctx.Err() != nil {
		return false
	}

	p.mu.Lock()
	if seq <= p.applied {
		p.mu.Unlock()
		return false
	}
	if snap == nil {
		p.failures++
		failures := p.failures
		p.mu.Unlock()

		p.log.Debug("dashboard unavailable, keeping last snapshot", "failures", failures)
		if p.opts.OnError != nil {
			p.opts.OnError(failures)
		}
		return false
	}

	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now()
	}
	p.snap = snap
	p.applied = seq
	p.failures = 0
	p.lastSuccess = snap.FetchedAt
	p.mu.Unlock()

	if p.opts.OnUpdate != nil {
		p.opts.OnUpdate(snap)
	}
	return true
}

// Refresh runs a tick now unless a manual refresh ran too recently.
// It reports false when throttled.
func (p *Poller) Refresh(ctx context.Context) bool {
	if !p.limiter.Allow() {
		return false
	}
	p.Tick(ctx)
	return true
}

// =============================================================================
// STATE
// =============================================================================

// Snapshot returns the current snapshot. It is never nil and must not be
// modified.
func (p *Poller) Snapshot() *model.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Failures returns the number of consecutive failed fetches.
func (p *Poller) Failures() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.failures
}

// Stale reports whether the latest fetch failed.
func (p *Poller) Stale() bool {
	return p.Failures() > 0
}

// LastSuccess returns when the current snapshot was fetched, or the zero
// time if it is still the default.
func (p *Poller) LastSuccess() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastSuccess
}
