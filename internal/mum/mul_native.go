//go:build !purego

package mum

import "math/bits"

// Mul128 returns the 128-bit product of a and b as (hi, lo).
func Mul128(a, b uint64) (hi, lo uint64) {
	return bits.Mul64(a, b)
}
