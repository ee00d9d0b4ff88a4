package mum

// MulPortable returns the full 128-bit product of a and b using only 32x32->64
// multiplies. It must agree with bits.Mul64 for every input.
func MulPortable(a, b uint64) (hi, lo uint64) {
	ha, la := a>>32, a&0xffffffff
	hb, lb := b>>32, b&0xffffffff

	rh := ha * hb
	rm0 := ha * lb
	rm1 := hb * la
	rl := la * lb

	t := rl + rm0<<32
	var c uint64
	if t < rl {
		c = 1
	}
	lo = t + rm1<<32
	if lo < t {
		c++
	}
	hi = rh + rm0>>32 + rm1>>32 + c
	return hi, lo
}
