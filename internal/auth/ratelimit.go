package auth

import (
	"sync"
	"time"
)

// RateLimiter is a fixed-window in-memory limiter keyed by an arbitrary
// string (an email address or remote IP). It exists to throttle OTP
// requests; it is deliberately not a general-purpose rate-limiting engine.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	buckets map[string]*window
}

type window struct {
	start time.Time
	count int
}

// NewRateLimiter creates a limiter allowing limit hits per window.
func NewRateLimiter(limit int, windowSize time.Duration) *RateLimiter {
	return &RateLimiter{
		window:  windowSize,
		limit:   limit,
		buckets: make(map[string]*window),
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (r *RateLimiter) Allow(key string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[key]
	if !ok || now.Sub(b.start) >= r.window {
		r.buckets[key] = &window{start: now, count: 1}
		return true
	}

	b.count++
	return b.count <= r.limit
}

// Prune drops windows that ended before now. Called opportunistically so the
// map does not grow without bound.
func (r *RateLimiter) Prune(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, b := range r.buckets {
		if now.Sub(b.start) >= r.window {
			delete(r.buckets, key)
		}
	}
}
