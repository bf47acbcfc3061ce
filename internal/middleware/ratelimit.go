package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// maxEntries bounds the per-caller bucket map; idle entries are evicted
	// once the map grows past it.
	maxEntries = 10000
	// maxIdle is how long a caller must stay quiet before its bucket is a
	// candidate for eviction. Active callers keep their state through
	// eviction sweeps.
	maxIdle = 3 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per caller key.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rate    rate.Limit
	burst   int
}

// NewRateLimiter creates a limiter allowing requestsPerSecond with the given
// burst per caller.
func NewRateLimiter(requestsPerSecond, burst int) *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*limiterEntry),
		rate:    rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

// Allow reports whether the caller identified by key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	e, ok := rl.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.entries[key] = e
	}
	e.lastSeen = now

	if len(rl.entries) > maxEntries {
		rl.evictIdle(now)
	}
	rl.mu.Unlock()

	return e.limiter.Allow()
}

// evictIdle drops buckets that have not been seen recently. Callers still
// inside their window keep their consumed tokens, so churn on the key space
// cannot reset an active caller's limit. Caller holds mu.
func (rl *RateLimiter) evictIdle(now time.Time) {
	for k, e := range rl.entries {
		if now.Sub(e.lastSeen) > maxIdle {
			delete(rl.entries, k)
		}
	}
}
