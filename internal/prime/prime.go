// Package prime implements a deterministic primality test for 64-bit integers:
// Miller-Rabin over Montgomery arithmetic with a witness set that is exact below 2^64.
package prime

// strongPseudoprime passes the Montgomery SPRP rounds below and is special-cased.
const strongPseudoprime = 3215031751

// base2Bound is the smallest strong pseudoprime to base 2; below it base 2 decides alone.
const base2Bound = 2047

var witnesses = [...]uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsPrime reports whether n is prime.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n&1 == 0 {
		return false
	}
	if n < 9 {
		return true
	}
	if n%3 == 0 || n%5 == 0 || n%7 == 0 {
		return false
	}
	if n == strongPseudoprime {
		return false
	}

	m := newMontgomery(n)
	if !m.sprp(2) {
		return false
	}
	if n < base2Bound {
		return true
	}
	for _, a := range witnesses {
		if !m.sprp(a) {
			return false
		}
	}
	return true
}
