package smchash

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/satmihir/smchash/internal/retry"
)

// SecretRetryConfig bounds MakeSecretContext.
type SecretRetryConfig struct {
	// MaxAttempts is the number of seeds tried, the caller's included. 0 means no limit.
	MaxAttempts int
	// AttemptTimeout bounds the search for one seed. 0 means no deadline.
	AttemptTimeout time.Duration
}

// DefaultSecretRetryConfig returns three attempts of 30 seconds each.
func DefaultSecretRetryConfig() SecretRetryConfig {
	c := retry.DefaultConfig()
	return SecretRetryConfig{MaxAttempts: c.MaxAttempts, AttemptTimeout: c.AttemptTimeout}
}

// MakeSecretContext runs MakeSecret under per-attempt deadlines. When an attempt times
// out or exhausts its ceiling, the next one starts from a seed derived from the previous
// one with Step, so the outcome stays reproducible. It returns the table and the seed
// that produced it.
func MakeSecretContext(ctx context.Context, seed uint64, config SecretRetryConfig, opts ...SecretOption) (Secret, uint64, error) {
	cfg := secretConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger

	type result struct {
		secret Secret
		seed   uint64
	}

	next := seed
	res, err := retry.Do(ctx, retry.Config{MaxAttempts: config.MaxAttempts, AttemptTimeout: config.AttemptTimeout},
		func(attemptCtx context.Context, attempt int) (result, error, bool) {
			current := next
			next, _ = Step(current)

			attemptOpts := append(opts[:len(opts):len(opts)], WithContext(attemptCtx))
			secret, err := MakeSecret(current, attemptOpts...)
			if err == nil {
				return result{secret: secret, seed: current}, nil, false
			}

			retryable := errors.Is(err, ErrSecretSearchExhausted) ||
				(errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil)
			log.Warn("secret generation attempt failed",
				zap.Int("attempt", attempt),
				zap.Uint64("seed", current),
				zap.Bool("retrying", retryable),
				zap.Error(err),
			)
			return result{}, err, retryable
		})
	if err != nil {
		return Secret{}, 0, err
	}
	return res.secret, res.seed, nil
}
