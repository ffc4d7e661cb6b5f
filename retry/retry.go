// Package retry runs collaborator calls a small bounded number of times.
// Research and profile loading are never retried here; only draft generation
// and model-based scoring go through it.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config bounds one retried operation.
type Config struct {
	Attempts int           // total attempts, >= 1
	Backoff  time.Duration // fixed delay between attempts
	OnRetry  func(attempt int, err error)
}

// Do runs op until it succeeds, attempts are spent, or ctx is cancelled.
// Context cancellation is returned as-is so callers can classify it.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err)
		}
		select {
		case <-time.After(cfg.Backoff):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
