package hasher

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"

	"github.com/satmihir/smchash"
)

var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

var (
	DefaultUnsaltedHash64 Hash64 = NewSmcHash64(nil)
)

// Hash64 defines the hashing operations needed for routing and file digests.
type Hash64 interface {
	// Hash64 computes a 64-bit hash of the given bytes.
	Hash64(data []byte) uint64
}

// HashConfig contains configuration for hashing operations.
type HashConfig struct {
	Salt []byte
	// Seed, when set, is used as is instead of a seed derived from Salt.
	Seed *uint64
	// Secret replaces the built-in smchash table. Other algorithms ignore it.
	Secret *smchash.Secret
}

func NewHashConfig(salt []byte) *HashConfig {
	return &HashConfig{Salt: salt}
}

// Algorithm names a Hash64 implementation.
type Algorithm string

const (
	AlgorithmSmcHash Algorithm = "smchash"
	AlgorithmXXH3    Algorithm = "xxh3"
	AlgorithmXXHash  Algorithm = "xxhash"
)

// ParseAlgorithm accepts an algorithm name in any case.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(name))); a {
	case AlgorithmSmcHash, AlgorithmXXH3, AlgorithmXXHash:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// New returns the Hash64 for algo.
func New(algo Algorithm, config *HashConfig) (Hash64, error) {
	switch algo {
	case AlgorithmSmcHash:
		return NewSmcHash64(config), nil
	case AlgorithmXXH3:
		return NewXXH3Hash64(config), nil
	case AlgorithmXXHash:
		return NewXXHash64(config), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
}

// SmcHash64 is a Hash64 implementation using smchash.
type SmcHash64 struct {
	seed   uint64
	secret *smchash.Secret
}

func NewSmcHash64(config *HashConfig) *SmcHash64 {
	h := &SmcHash64{}
	if config == nil {
		h.seed = smchash.DefaultSecret()[0]
		return h
	}
	if config.Secret != nil {
		s := *config.Secret
		h.secret = &s
	}
	switch {
	case config.Seed != nil:
		h.seed = *config.Seed
	case len(config.Salt) > 0:
		// Hash the salt down to a 64-bit seed
		h.seed = smchash.Hash(config.Salt)
	case h.secret == nil:
		h.seed = smchash.DefaultSecret()[0]
	}
	return h
}

func (s *SmcHash64) Hash64(data []byte) uint64 {
	if s.secret != nil {
		return smchash.HashSecret(data, s.seed, s.secret)
	}
	return smchash.HashSeeded(data, s.seed)
}

// XXH3Hash64 is a Hash64 implementation using xxhash3.
type XXH3Hash64 struct {
	seed uint64
}

func NewXXH3Hash64(config *HashConfig) *XXH3Hash64 {
	h := &XXH3Hash64{}
	switch {
	case config == nil:
	case config.Seed != nil:
		h.seed = *config.Seed
	case len(config.Salt) > 0:
		// Hash the salt down to a 64-bit seed
		h.seed = xxh3.Hash(config.Salt)
	}
	return h
}

func (x *XXH3Hash64) Hash64(data []byte) uint64 {
	return xxh3.HashSeed(data, x.seed)
}

// XXHash64 is a Hash64 implementation using xxhash64. xxhash64 has no seeded
// one-shot form, so the salt, or a seed as eight little-endian bytes, is written ahead
// of the data.
type XXHash64 struct {
	salt []byte
}

func NewXXHash64(config *HashConfig) *XXHash64 {
	h := &XXHash64{}
	switch {
	case config == nil:
	case config.Seed != nil:
		h.salt = binary.LittleEndian.AppendUint64(nil, *config.Seed)
	case len(config.Salt) > 0:
		h.salt = append([]byte(nil), config.Salt...)
	}
	return h
}

func (x *XXHash64) Hash64(data []byte) uint64 {
	if len(x.salt) == 0 {
		return xxhash.Sum64(data)
	}
	d := xxhash.New()
	_, _ = d.Write(x.salt)
	_, _ = d.Write(data)
	return d.Sum64()
}
