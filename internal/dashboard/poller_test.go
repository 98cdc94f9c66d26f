// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/twin-tui/internal/api"
	"github.com/jeranaias/twin-tui/internal/logging"
	"github.com/jeranaias/twin-tui/internal/mockbackend"
	"github.com/jeranaias/twin-tui/internal/model"
)

func snapWithQueries(n int) *model.Snapshot {
	s := model.DefaultSnapshot()
	s.Stats.TotalQueries = n
	return s
}

func quiet() Options {
	return Options{Logger: logging.Discard()}
}

func TestNew_DefaultSnapshot(t *testing.T) {
	p := New(FetcherFunc(func(context.Context) *model.Snapshot { return nil }), quiet())
	require.NotNil(t, p.Snapshot())
	assert.Equal(t, model.DefaultSnapshot().Stats, p.Snapshot().Stats)
	assert.True(t, p.LastSuccess().IsZero())
}

func TestTick_AppliesSnapshot(t *testing.T) {
	var updates atomic.Int32
	opts := quiet()
	opts.OnUpdate = func(*model.Snapshot) { updates.Add(1) }
	p := New(FetcherFunc(func(context.Context) *model.Snapshot { return snapWithQueries(7) }), opts)

	assert.True(t, p.Tick(context.Background()))
	assert.Equal(t, 7, p.Snapshot().Stats.TotalQueries)
	assert.Equal(t, int32(1), updates.Load())
	assert.False(t, p.LastSuccess().IsZero())
}

func TestTick_NilKeepsPrevious(t *testing.T) {
	var fail atomic.Bool
	var lastFailures atomic.Int32
	opts := quiet()
	opts.OnError = func(n int) { lastFailures.Store(int32(n)) }
	p := New(FetcherFunc(func(context.Context) *model.Snapshot {
		if fail.Load() {
			return nil
		}
		return snapWithQueries(3)
	}), opts)

	require.True(t, p.Tick(context.Background()))
	fail.Store(true)
	assert.False(t, p.Tick(context.Background()))
	assert.False(t, p.Tick(context.Background()))

	require.NotNil(t, p.Snapshot())
	assert.Equal(t, 3, p.Snapshot().Stats.TotalQueries, "stale but available")
	assert.Equal(t, 2, p.Failures())
	assert.Equal(t, int32(2), lastFailures.Load())
	assert.True(t, p.Stale())

	fail.Store(false)
	require.True(t, p.Tick(context.Background()))
	assert.Equal(t, 0, p.Failures())
}

func TestTick_LatestWins(t *testing.T) {
	slow := make(chan struct{})
	var calls atomic.Int32
	p := New(FetcherFunc(func(context.Context) *model.Snapshot {
		if calls.Add(1) == 1 {
			<-slow
			return snapWithQueries(1)
		}
		return snapWithQueries(2)
	}), quiet())

	first := make(chan bool)
	go func() { first <- p.Tick(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	assert.True(t, p.Tick(context.Background()))
	close(slow)
	assert.False(t, <-first, "older tick is discarded")
	assert.Equal(t, 2, p.Snapshot().Stats.TotalQueries)
}

func TestRefresh_Throttled(t *testing.T) {
	var calls atomic.Int32
	opts := quiet()
	opts.RefreshEvery = time.Hour
	p := New(FetcherFunc(func(context.Context) *model.Snapshot {
		calls.Add(1)
		return snapWithQueries(1)
	}), opts)

	assert.True(t, p.Refresh(context.Background()))
	assert.False(t, p.Refresh(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestStart_FetchesImmediatelyAndOnSchedule(t *testing.T) {
	var calls atomic.Int32
	opts := quiet()
	opts.Interval = time.Second
	p := New(FetcherFunc(func(context.Context) *model.Snapshot {
		return snapWithQueries(int(calls.Add(1)))
	}), opts)

	stop := p.Start(context.Background())
	defer stop()

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)
}

func TestStart_NothingAppliedAfterStop(t *testing.T) {
	release := make(chan struct{})
	var updates atomic.Int32
	opts := quiet()
	opts.OnUpdate = func(*model.Snapshot) { updates.Add(1) }
	p := New(FetcherFunc(func(ctx context.Context) *model.Snapshot {
		<-release
		return snapWithQueries(9)
	}), opts)

	stop := p.Start(context.Background())
	stop()
	stop() // idempotent
	close(release)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, p.Tick(context.Background()), "ticks after stop are ignored")
	assert.Equal(t, int32(0), updates.Load())
	assert.Equal(t, 0, p.Snapshot().Stats.TotalQueries)
}

func TestStart_StopCancelsInFlightFetch(t *testing.T) {
	cancelled := make(chan struct{})
	p := New(FetcherFunc(func(ctx context.Context) *model.Snapshot {
		<-ctx.Done()
		close(cancelled)
		return nil
	}), quiet())

	stop := p.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	stop()

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight fetch was not cancelled")
	}
}

func TestPoller_AgainstMockBackend(t *testing.T) {
	backend := mockbackend.New(mockbackend.Options{})
	ts := httptest.NewServer(backend.Handler())
	defer ts.Close()
	client := api.NewClient(api.ClientConfig{BaseURL: ts.URL, Logger: logging.Discard()})
	p := New(client, quiet())

	require.True(t, p.Tick(context.Background()))
	before := p.Snapshot()

	backend.FailWith(http.StatusInternalServerError)
	assert.False(t, p.Tick(context.Background()))
	assert.Same(t, before, p.Snapshot())
	assert.Equal(t, 1, p.Failures())
}
