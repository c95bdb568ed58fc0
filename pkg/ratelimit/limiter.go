// Package ratelimit provides a sliding-window request limiter used to pace
// outbound gateway calls.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter grants at most maxRequests acquisitions within any window. Grants
// expire as the window slides; Acquire blocks until a slot frees up.
type Limiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	grants      []time.Time
}

// New creates a Limiter allowing maxRequests per window. A non-positive
// maxRequests or window disables limiting entirely.
func New(maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
	}
}

// Acquire blocks until a slot is free or ctx is done. Waiters woken by an
// expiring grant compete with new callers for the freed slot, so strict
// FIFO ordering is not guaranteed.
func (l *Limiter) Acquire(ctx context.Context) error {
	if l == nil || l.maxRequests <= 0 || l.window <= 0 {
		return ctx.Err()
	}

	for {
		l.mu.Lock()
		now := time.Now()
		l.prune(now)

		if len(l.grants) < l.maxRequests {
			l.grants = append(l.grants, now)
			l.mu.Unlock()
			return nil
		}

		wait := l.window - now.Sub(l.grants[0])
		l.mu.Unlock()

		if wait <= 0 {
			continue
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Reset forgets all outstanding grants.
func (l *Limiter) Reset() {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.grants = l.grants[:0]
	l.mu.Unlock()
}

// prune drops grants older than the window. Callers hold l.mu.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.grants[:0]
	for _, grant := range l.grants {
		if grant.After(cutoff) {
			kept = append(kept, grant)
		}
	}
	l.grants = kept
}
