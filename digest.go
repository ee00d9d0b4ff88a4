package smchash

import (
	"encoding/binary"
	"hash"
)

var _ hash.Hash64 = (*Digest)(nil)

// Digest adapts the one-shot functions to hash.Hash64. Writes are buffered and hashed
// on Sum64, so the result always equals the matching one-shot function.
type Digest struct {
	seed   uint64
	secret *Secret
	buf    []byte
}

// New returns a Digest equivalent to Hash.
func New() *Digest {
	return NewSeeded(defaultSecret[0])
}

// NewSeeded returns a Digest equivalent to HashSeeded with seed.
func NewSeeded(seed uint64) *Digest {
	return &Digest{seed: seed}
}

// NewWithSecret returns a Digest equivalent to HashSecret with seed and a copy of secret.
func NewWithSecret(seed uint64, secret Secret) *Digest {
	return &Digest{seed: seed, secret: &secret}
}

// Write appends p to the buffered input. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	d.buf = append(d.buf, p...)
	return len(p), nil
}

// WriteString appends s to the buffered input.
func (d *Digest) WriteString(s string) (int, error) {
	d.buf = append(d.buf, s...)
	return len(s), nil
}

// Sum64 returns the digest of everything written so far.
func (d *Digest) Sum64() uint64 {
	if d.secret != nil {
		return HashSecret(d.buf, d.seed, d.secret)
	}
	return HashSeeded(d.buf, d.seed)
}

// Sum appends the big-endian digest to b.
func (d *Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, d.Sum64())
}

// Reset discards buffered input and keeps the seed and secret.
func (d *Digest) Reset() {
	d.buf = d.buf[:0]
}

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return 8 }

// BlockSize returns the bulk stripe length.
func (d *Digest) BlockSize() int { return 128 }
