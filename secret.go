package smchash

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"go.uber.org/zap"

	"github.com/satmihir/smchash/internal/constants"
	"github.com/satmihir/smchash/internal/prime"
	"github.com/satmihir/smchash/internal/utils"
)

// ErrSecretSearchExhausted is returned when a secret slot finds no acceptable word
// within the attempt ceiling.
var ErrSecretSearchExhausted = errors.New("secret search exhausted")

// Secret is a table of hashing constants. Tables from MakeSecret hold odd primes with
// 32 bits set, pairwise 32 bits apart.
type Secret [constants.SecretWords]uint64

var defaultSecret = Secret(constants.DefaultSecret)

// DefaultSecret returns a copy of the built-in table used by Hash, HashSeeded and Rand.
func DefaultSecret() Secret {
	return defaultSecret
}

// Property names a secret-table invariant.
type Property string

const (
	PropertyOdd      Property = "odd"
	PropertyPopcount Property = "popcount 32"
	PropertyPrime    Property = "prime"
	PropertyDistance Property = "hamming distance 32"
)

// InvalidSecretError reports the first invariant a table violates. Other is the second
// slot of a failed pairwise check and -1 otherwise.
type InvalidSecretError struct {
	Index    int
	Other    int
	Word     uint64
	Property Property
}

func (e *InvalidSecretError) Error() string {
	if e.Other >= 0 {
		return fmt.Sprintf("invalid secret: words %d and %d violate %s", e.Index, e.Other, e.Property)
	}
	return fmt.Sprintf("invalid secret: word %d (%#016x) is not %s", e.Index, e.Word, e.Property)
}

// Validate checks every invariant of a generated table.
func (s *Secret) Validate() error {
	if err := s.validateShape(); err != nil {
		return err
	}
	for i, w := range s {
		if !prime.IsPrime(w) {
			return &InvalidSecretError{Index: i, Other: -1, Word: w, Property: PropertyPrime}
		}
	}
	return nil
}

// validateShape checks the bit-level invariants only. The default table passes these
// but not primality.
func (s *Secret) validateShape() error {
	for i, w := range s {
		if w&1 == 0 {
			return &InvalidSecretError{Index: i, Other: -1, Word: w, Property: PropertyOdd}
		}
		if bits.OnesCount64(w) != 32 {
			return &InvalidSecretError{Index: i, Other: -1, Word: w, Property: PropertyPopcount}
		}
		for j := 0; j < i; j++ {
			if bits.OnesCount64(s[j]^w) != 32 {
				return &InvalidSecretError{Index: j, Other: i, Word: w, Property: PropertyDistance}
			}
		}
	}
	return nil
}

// IsPrime reports whether n is prime. It is exact for every uint64.
func IsPrime(n uint64) bool {
	return prime.IsPrime(n)
}

type secretConfig struct {
	maxAttempts uint64
	logger      *zap.Logger
	ctx         context.Context
}

// SecretOption configures MakeSecret.
type SecretOption func(*secretConfig)

// WithMaxAttempts sets the per-slot draw ceiling. Zero keeps the default.
func WithMaxAttempts(n uint64) SecretOption {
	return func(c *secretConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithSecretLogger logs accepted slots at debug level.
func WithSecretLogger(l *zap.Logger) SecretOption {
	return func(c *secretConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithContext makes the search stop with the context's error once ctx is done.
func WithContext(ctx context.Context) SecretOption {
	return func(c *secretConfig) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// MakeSecret derives a secret table from seed by rejection sampling. The same seed
// always yields the same table.
func MakeSecret(seed uint64, opts ...SecretOption) (Secret, error) {
	cfg := secretConfig{
		maxAttempts: constants.MaxSecretAttempts,
		logger:      zap.NewNop(),
		ctx:         context.Background(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var secret Secret
	table := constants.PopcountFourBytes[:]
	tableLen := uint64(len(table))

	for i := range secret {
		accepted := false
		var attempt uint64
		for attempt = 1; attempt <= cfg.maxAttempts; attempt++ {
			if attempt%constants.SecretPollInterval == 0 {
				if err := cfg.ctx.Err(); err != nil {
					return Secret{}, fmt.Errorf("generating secret word %d: %w", i, err)
				}
			}

			var w uint64
			for j := 0; j < 64; j += 8 {
				var out uint64
				out, seed = Step(seed)
				w |= uint64(table[out%tableLen]) << j
			}

			if w&1 == 0 || !farFromAll(w, secret[:i]) || !prime.IsPrime(w) {
				continue
			}
			secret[i] = w
			accepted = true
			break
		}

		if !accepted {
			return Secret{}, fmt.Errorf("%w: word %d after %d attempts", ErrSecretSearchExhausted, i, cfg.maxAttempts)
		}
		cfg.logger.Debug("secret word accepted",
			zap.Int("index", i),
			zap.Uint64("attempts", attempt),
		)
	}

	return secret, nil
}

// MustMakeSecret is MakeSecret that panics on failure.
func MustMakeSecret(seed uint64, opts ...SecretOption) Secret {
	return utils.Must(MakeSecret(seed, opts...))
}

func farFromAll(w uint64, accepted []uint64) bool {
	for _, prev := range accepted {
		if bits.OnesCount64(prev^w) != 32 {
			return false
		}
	}
	return true
}
