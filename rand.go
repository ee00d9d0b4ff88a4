package smchash

import (
	"math/rand/v2"

	"github.com/satmihir/smchash/internal/mum"
)

// Step advances the generator state and returns the output for the new state along
// with that state. The caller keeps next for the following call.
func Step(state uint64) (out, next uint64) {
	next = state + defaultSecret[0]
	return mum.Mix(next, next^defaultSecret[1]), next
}

// Rand returns the next pseudo-random value and advances *seed. It is not
// cryptographically secure.
func Rand(seed *uint64) uint64 {
	out, next := Step(*seed)
	*seed = next
	return out
}

// Source is a math/rand/v2 source driven by Step. It is not safe for concurrent use.
type Source struct {
	state uint64
}

var _ rand.Source = (*Source)(nil)

// NewSource returns a Source starting from seed.
func NewSource(seed uint64) *Source {
	return &Source{state: seed}
}

// Uint64 returns the next value in the sequence.
func (s *Source) Uint64() uint64 {
	return Rand(&s.state)
}

// Seed resets the source to seed.
func (s *Source) Seed(seed uint64) {
	s.state = seed
}

// State returns the current state; NewSource(s.State()) continues the same sequence.
func (s *Source) State() uint64 {
	return s.state
}

// NewRand returns a *rand.Rand backed by a Source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(NewSource(seed))
}
