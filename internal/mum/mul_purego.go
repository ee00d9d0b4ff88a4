//go:build purego

package mum

// Mul128 returns the 128-bit product of a and b as (hi, lo).
func Mul128(a, b uint64) (hi, lo uint64) {
	return MulPortable(a, b)
}
