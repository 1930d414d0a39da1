package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestPoller_ContinuesWhilePredicateHolds(t *testing.T) {
	p := NewPoller()
	defer p.StopAll()
	key := Key{"documents", "list"}

	var ticks atomic.Int64
	p.Start(context.Background(), key, 10*time.Millisecond, func(context.Context) bool {
		return ticks.Add(1) < 3
	})

	waitFor(t, time.Second, func() bool { return ticks.Load() == 3 })

	// Terminal tick disarms the key; no further refetches are scheduled.
	waitFor(t, time.Second, func() bool { return !p.Active(key) })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(3), ticks.Load())
}

func TestPoller_TerminalPayloadStopsImmediately(t *testing.T) {
	p := NewPoller()
	defer p.StopAll()
	key := Key{"documents", "detail", "d1"}

	var ticks atomic.Int64
	p.Start(context.Background(), key, 10*time.Millisecond, func(context.Context) bool {
		ticks.Add(1)
		return false
	})

	waitFor(t, time.Second, func() bool { return ticks.Load() == 1 && !p.Active(key) })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), ticks.Load())
}

func TestPoller_StartResetsExistingTimer(t *testing.T) {
	p := NewPoller()
	defer p.StopAll()
	key := Key{"invoices", "list"}

	var first, second atomic.Int64
	p.Start(context.Background(), key, time.Hour, func(context.Context) bool {
		first.Add(1)
		return false
	})
	p.Start(context.Background(), key, 10*time.Millisecond, func(context.Context) bool {
		second.Add(1)
		return false
	})

	waitFor(t, time.Second, func() bool { return second.Load() == 1 })
	assert.Equal(t, int64(0), first.Load(), "restart replaces the pending tick")
}

func TestPoller_Stop(t *testing.T) {
	p := NewPoller()
	key := Key{"plans", "list"}

	var ticks atomic.Int64
	p.Start(context.Background(), key, 200*time.Millisecond, func(context.Context) bool {
		ticks.Add(1)
		return true
	})
	assert.True(t, p.Active(key))

	p.Stop(key)
	assert.False(t, p.Active(key))
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int64(0), ticks.Load())
}

func TestPoller_ContextCancelStopsLoop(t *testing.T) {
	p := NewPoller()
	defer p.StopAll()
	key := Key{"documents", "list"}

	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int64
	p.Start(ctx, key, 10*time.Millisecond, func(context.Context) bool {
		ticks.Add(1)
		return true
	})

	waitFor(t, time.Second, func() bool { return ticks.Load() >= 1 })
	cancel()

	waitFor(t, time.Second, func() bool { return !p.Active(key) })
	final := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, final, ticks.Load())
}

func TestPoller_StopAll(t *testing.T) {
	p := NewPoller()
	k1 := Key{"a"}
	k2 := Key{"b"}
	p.Start(context.Background(), k1, time.Hour, func(context.Context) bool { return true })
	p.Start(context.Background(), k2, time.Hour, func(context.Context) bool { return true })

	p.StopAll()
	assert.False(t, p.Active(k1))
	assert.False(t, p.Active(k2))
}
