package service

import (
	"context"
	"time"
)

// ReadPolicy bounds how often a failed read is repeated.
type ReadPolicy struct {
	Attempts int
	Backoff  time.Duration
}

func (p ReadPolicy) delay(attempt int) time.Duration {
	if attempt <= 1 || p.Backoff <= 0 {
		return p.Backoff
	}
	return p.Backoff << (attempt - 1)
}

// retryRead runs fn until it succeeds, fails with a non-transient error, or
// the policy is exhausted. Only reads go through here; writes are never
// repeated blindly.
func retryRead[T any](ctx context.Context, p ReadPolicy, fn func(context.Context) (T, error)) (T, error) {
	attempts := max(p.Attempts, 1)

	var (
		out T
		err error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err = fn(ctx)
		if err == nil || !transient(err) || attempt == attempts {
			return out, err
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return out, err
		case <-timer.C:
		}
	}
	return out, err
}

// withTimeout bounds a public operation. A zero timeout leaves ctx as is.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
