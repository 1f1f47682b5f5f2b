// Package ratelimit counts failed attempts per key over a sliding time window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepEvery is how many operations pass between full sweeps of expired keys.
const sweepEvery = 256

// Window is an in-memory sliding window limiter.
type Window struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	ops    int
	now    func() time.Time
}

// NewWindow creates a limiter that blocks a key after limit failures within window.
func NewWindow(limit int, window time.Duration) *Window {
	return &Window{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Blocked reports whether key reached the failure limit within the window.
func (w *Window) Blocked(_ context.Context, key string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.tick(now)

	return len(w.prune(key, now)) >= w.limit, nil
}

// Fail records one failed attempt for key.
func (w *Window) Fail(_ context.Context, key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.tick(now)

	w.hits[key] = append(w.prune(key, now), now)

	return nil
}

// Len returns the number of keys currently tracked.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.hits)
}

// prune drops the expired timestamps of key and returns the remaining ones.
func (w *Window) prune(key string, now time.Time) []time.Time {
	ts := w.hits[key]

	i := 0
	for i < len(ts) && now.Sub(ts[i]) >= w.window {
		i++
	}

	if i == len(ts) {
		delete(w.hits, key)
		return nil
	}

	if i > 0 {
		ts = append(ts[:0], ts[i:]...)
		w.hits[key] = ts
	}

	return ts
}

func (w *Window) tick(now time.Time) {
	w.ops++
	if w.ops < sweepEvery {
		return
	}

	w.ops = 0

	for key := range w.hits {
		w.prune(key, now)
	}
}
