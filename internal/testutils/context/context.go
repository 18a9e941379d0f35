package context

import (
	"context"
	"testing"
	"time"
)

// WithTest derives a cancelable context bounded by the test's deadline.
//
// The deadline is 1 second before the test's one, to leave time for clean-up.
// The context is canceled when the test finishes.
func WithTest(ctx context.Context, t *testing.T) (context.Context, context.CancelFunc) {
	var cancel context.CancelFunc
	if deadline, ok := t.Deadline(); ok {
		ctx, cancel = context.WithDeadline(ctx, deadline.Add(-time.Second))
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	t.Cleanup(cancel)
	return ctx, cancel
}
