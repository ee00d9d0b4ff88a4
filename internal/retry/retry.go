// Package retry runs an operation in a bounded number of attempts, each under its own
// deadline, for work that cannot bound its own running time.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAttemptsExhausted is returned, wrapping the last attempt's error, when every
// attempt failed.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// Config configures the retry behavior.
type Config struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	// 0 means infinite retries.
	// Default: 3
	MaxAttempts int

	// AttemptTimeout bounds each attempt. The attempt's context is cancelled when it
	// expires; the parent context is left untouched.
	// 0 means no per-attempt deadline.
	// Default: 30s
	AttemptTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		AttemptTimeout: 30 * time.Second,
	}
}

// RetryableFunc is a function that can be retried.
// It receives the attempt's context and the 1-indexed attempt number and returns
// (result, error, shouldRetry). If shouldRetry is false, Do returns immediately.
type RetryableFunc[T any] func(ctx context.Context, attempt int) (T, error, bool)

// Do executes fn until it succeeds, declines a retry, runs out of attempts, or ctx is done.
func Do[T any](ctx context.Context, config Config, fn RetryableFunc[T]) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; config.MaxAttempts <= 0 || attempt <= config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, fmt.Errorf("%w (last attempt: %w)", err, lastErr)
			}
			return zero, err
		}

		result, err, shouldRetry := runAttempt(ctx, config.AttemptTimeout, attempt, fn)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !shouldRetry {
			return zero, lastErr
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, config.MaxAttempts, lastErr)
}

func runAttempt[T any](ctx context.Context, timeout time.Duration, attempt int, fn RetryableFunc[T]) (T, error, bool) {
	if timeout <= 0 {
		return fn(ctx, attempt)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx, attempt)
}
