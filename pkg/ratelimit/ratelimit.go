// Package ratelimit implements fixed-window request counting per client key.
package ratelimit

import (
	"context"
	"time"
)

// Store increments the hit counter for key inside the current window and
// reports the count together with the time left until the window resets.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter applies a request budget per window on top of a Store.
type Limiter struct {
	store  Store
	limit  int64
	window time.Duration
}

// New constructs a Limiter allowing limit hits per window.
func New(store Store, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{store: store, limit: int64(limit), window: window}
}

// Allow records a hit for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, resetIn, err := l.store.Hit(ctx, key, l.window)
	if err != nil {
		return Decision{Allowed: true}, err
	}
	if count > l.limit {
		if resetIn <= 0 {
			resetIn = l.window
		}
		return Decision{Allowed: false, RetryAfter: resetIn}, nil
	}
	return Decision{Allowed: true, Remaining: l.limit - count}, nil
}
