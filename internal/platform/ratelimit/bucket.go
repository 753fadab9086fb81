// Package ratelimit throttles write endpoints per client with an in-process
// sliding window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds, only set when not allowed
}

// Buckets keeps one sliding window of request timestamps per key. It is not
// distributed: each replica enforces its own limit.
type Buckets struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	buckets map[string][]time.Time
}

// NewBuckets allows limit requests per key per window. A non-positive
// window defaults to one minute.
func NewBuckets(limit int, window time.Duration) *Buckets {
	if window <= 0 {
		window = time.Minute
	}
	return &Buckets{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string][]time.Time),
	}
}

// Allow records one request for key if the window has room.
func (b *Buckets) Allow(key string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	stamps := trim(b.buckets[key], now.Add(-b.window))
	if len(stamps) >= b.limit {
		b.buckets[key] = stamps
		resetAt := stamps[0].Add(b.window)
		retry := int(resetAt.Sub(now).Seconds()) + 1
		return Result{Limit: b.limit, ResetAt: resetAt, RetryAfter: retry}
	}

	stamps = append(stamps, now)
	b.buckets[key] = stamps
	return Result{
		Allowed:   true,
		Limit:     b.limit,
		Remaining: b.limit - len(stamps),
		ResetAt:   stamps[0].Add(b.window),
	}
}

// Sweep drops keys whose windows are empty.
func (b *Buckets) Sweep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	cutoff := b.now().Add(-b.window)
	for key, stamps := range b.buckets {
		if stamps = trim(stamps, cutoff); len(stamps) == 0 {
			delete(b.buckets, key)
		} else {
			b.buckets[key] = stamps
		}
	}
}

// Run sweeps idle keys once per window until ctx is done.
func (b *Buckets) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			b.Sweep()
		}
	}
}

func trim(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	return stamps[i:]
}
