package retry

import (
	"context"
	"time"
)

// Backoff blocks until the next attempt is due.
//
// It returns nil when the caller may try again, or ctx.Err() (or its cause)
// when ctx is done first.
type Backoff func(context.Context) error

// StaticBackoff waits for the same interval on every call.
func StaticBackoff(interval time.Duration) Backoff {
	return ExponentialBackoff(interval, 1, interval)
}

// ExponentialBackoff waits `initial * r^N` on the N-th call, capped by limit.
//
// limit <= 0 means no cap.
func ExponentialBackoff(initial time.Duration, r float64, limit time.Duration) Backoff {
	interval := initial
	return func(ctx context.Context) error {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			if cause := context.Cause(ctx); cause != nil {
				return cause
			}
			return ctx.Err()
		case <-timer.C:
			next := time.Duration(float64(interval) * r)
			if 0 < limit && limit < next {
				next = limit
			}
			interval = next
			return nil
		}
	}
}
