package prime

import (
	"math"
	"math/bits"

	"github.com/satmihir/smchash/internal/mum"
)

// montgomery holds the per-modulus constants for arithmetic modulo an odd n with R = 2^64.
type montgomery struct {
	n    uint64
	nInv uint64 // n^-1 mod 2^64
	one  uint64 // R mod n
}

func newMontgomery(n uint64) montgomery {
	return montgomery{n: n, nInv: inverse(n), one: math.MaxUint64%n + 1}
}

// inverse computes n^-1 mod 2^64 for odd n. The seed (3n)^2 is correct to 5 bits and
// every Newton step doubles that.
func inverse(n uint64) uint64 {
	est := (3 * n) ^ 2
	est = (2 - est*n) * est
	est = (2 - est*n) * est
	est = (2 - est*n) * est
	est = (2 - est*n) * est
	return est
}

// reduce maps hi:lo, which must be below n*2^64, to hi:lo * R^-1 mod n.
func (m montgomery) reduce(hi, lo uint64) uint64 {
	q := lo * m.nInv
	t, _ := mum.Mul128(q, m.n)
	if hi < t {
		return hi - t + m.n
	}
	return hi - t
}

func (m montgomery) mul(a, b uint64) uint64 {
	hi, lo := mum.Mul128(a, b)
	return m.reduce(hi, lo)
}

// to converts x < n into Montgomery form, x*R mod n.
func (m montgomery) to(x uint64) uint64 {
	return bits.Rem64(x, 0, m.n)
}

func (m montgomery) pow(base, exp uint64) uint64 {
	result := m.one
	for exp > 0 {
		if exp&1 == 1 {
			result = m.mul(result, base)
		}
		base = m.mul(base, base)
		exp >>= 1
	}
	return result
}

// sprp reports whether n is a strong probable prime to base a.
func (m montgomery) sprp(a uint64) bool {
	d := m.n - 1
	s := bits.TrailingZeros64(d)
	d >>= uint(s)

	am := m.to(a % m.n)
	if am == 0 {
		return true
	}

	x := m.pow(am, d)
	negOne := m.n - m.one
	if x == m.one || x == negOne {
		return true
	}

	for r := 1; r < s; r++ {
		x = m.mul(x, x)
		if x == negOne {
			return true
		}
		if x == m.one {
			return false
		}
	}
	return false
}
