// Package ratelimit throttles repeated events per key, such as periodic
// progress lines during a long run.
package ratelimit

import (
	"sync"
	"time"
)

// Throttle is a per-key token bucket with a burst of one: each key passes at
// most once per interval. It counts the events it suppresses so the next
// passing event can report them. It is safe for concurrent use.
type Throttle struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64          // tokens per second
	nowFunc func() time.Time // injectable clock for testing
}

type bucket struct {
	tokens     float64
	lastCheck  time.Time
	suppressed int
}

// NewThrottle lets each key through at most once per interval. The first
// event for a key always passes. A non-positive interval never throttles.
func NewThrottle(interval time.Duration) *Throttle {
	rate := 0.0
	if interval > 0 {
		rate = 1 / interval.Seconds()
	}
	return &Throttle{
		buckets: make(map[string]*bucket),
		rate:    rate,
		nowFunc: time.Now,
	}
}

// Ready reports whether an event for key may pass now, and how many events
// for key were suppressed since the last one that passed. A nil Throttle
// always passes.
func (t *Throttle) Ready(key string) (ok bool, suppressed int) {
	if t == nil || t.rate == 0 {
		return true, 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.nowFunc()
	b, exists := t.buckets[key]
	if !exists {
		b = &bucket{tokens: 1, lastCheck: now}
		t.buckets[key] = b
	}

	// Refill based on elapsed time, capped at one token
	if elapsed := now.Sub(b.lastCheck).Seconds(); elapsed > 0 {
		b.tokens = min(b.tokens+t.rate*elapsed, 1)
		b.lastCheck = now
	}

	if b.tokens < 1.0 {
		b.suppressed++
		return false, 0
	}

	b.tokens--
	suppressed = b.suppressed
	b.suppressed = 0
	return true, suppressed
}
