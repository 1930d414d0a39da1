package cache

import (
	"context"
	"sync"
	"time"
)

// Polling intervals for queries that watch server-side progress.
const (
	ListPollInterval   = 5 * time.Second
	DetailPollInterval = 3 * time.Second
)

// Poller schedules conditional refetches per cache key. Each key is a small
// state machine: polling (a timer is armed) or idle. The tick function
// decides whether to continue, so polling stops itself the moment the
// watched payload reaches a terminal state.
type Poller struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewPoller() *Poller {
	return &Poller{timers: make(map[string]*time.Timer)}
}

// Start arms a timer for key firing after interval. When it fires, tick runs;
// a true result re-arms the timer, false leaves the key idle. Starting an
// already-polling key resets its timer, so at most one timer exists per key.
// The context cancels the loop between ticks.
func (p *Poller) Start(ctx context.Context, key Key, interval time.Duration, tick func(ctx context.Context) bool) {
	id := key.String()

	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.timers[id]; ok {
		t.Stop()
	}
	p.timers[id] = time.AfterFunc(interval, func() {
		p.fire(ctx, id, key, interval, tick)
	})
}

func (p *Poller) fire(ctx context.Context, id string, key Key, interval time.Duration, tick func(ctx context.Context) bool) {
	if ctx.Err() != nil {
		p.remove(id)
		return
	}
	if !tick(ctx) {
		p.remove(id)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Stop may have raced the tick; only re-arm a key that is still ours.
	if _, ok := p.timers[id]; !ok {
		return
	}
	p.timers[id] = time.AfterFunc(interval, func() {
		p.fire(ctx, id, key, interval, tick)
	})
}

func (p *Poller) remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.timers, id)
}

// Stop disarms the timer for key, if any.
func (p *Poller) Stop(key Key) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := key.String()
	if t, ok := p.timers[id]; ok {
		t.Stop()
		delete(p.timers, id)
	}
}

// StopAll disarms every timer. Called on logout and shutdown.
func (p *Poller) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
}

// Active reports whether key currently has a timer armed.
func (p *Poller) Active(key Key) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.timers[key.String()]
	return ok
}
