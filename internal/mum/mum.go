// Package mum holds the 64x64->128-bit multiply-and-fold primitives every smchash
// digest and PRNG output is built from.
package mum

// Mix multiplies a and b as 128-bit values and folds the high half into the low half.
func Mix(a, b uint64) uint64 {
	hi, lo := Mul128(a, b)
	return hi ^ lo
}

// Mum is Mix that also hands back the high half of the product.
func Mum(a, b uint64) (uint64, uint64) {
	hi, lo := Mul128(a, b)
	return lo ^ hi, hi
}
