package smchash

import (
	"encoding/binary"
	"unsafe"

	"github.com/satmihir/smchash/internal/mum"
)

// Priming slot for inputs over 16 bytes. The default entry points and HashSecret use
// different slots, so HashSecret(d, s, DefaultSecret()) != HashSeeded(d, s) for long d.
const (
	defaultWidePrime = 2
	secretWidePrime  = 0
)

// Hash returns the digest of data under the default seed and secret.
func Hash(data []byte) uint64 {
	return hashWith(data, defaultSecret[0], &defaultSecret, defaultWidePrime)
}

// HashSeeded returns the digest of data under seed and the default secret.
func HashSeeded(data []byte, seed uint64) uint64 {
	return hashWith(data, seed, &defaultSecret, defaultWidePrime)
}

// HashSecret returns the digest of data under seed and a caller-supplied secret,
// usually one produced by MakeSecret. A nil secret selects the default table.
func HashSecret(data []byte, seed uint64, secret *Secret) uint64 {
	if secret == nil {
		secret = &defaultSecret
	}
	return hashWith(data, seed, secret, secretWidePrime)
}

// HashString is Hash for strings; it does not copy s.
func HashString(s string) uint64 {
	return Hash(stringBytes(s))
}

// HashStringSeeded is HashSeeded for strings; it does not copy s.
func HashStringSeeded(s string, seed uint64) uint64 {
	return HashSeeded(stringBytes(s), seed)
}

func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func read64(p []byte) uint64 {
	return binary.LittleEndian.Uint64(p)
}

func read32(p []byte) uint64 {
	return uint64(binary.LittleEndian.Uint32(p))
}

func hashWith(data []byte, seed uint64, s *Secret, widePrime int) uint64 {
	length := uint64(len(data))
	var a, b uint64

	if length <= 16 {
		seed ^= mum.Mix(seed^s[0], s[1]^length)

		switch {
		case length >= 8:
			// Overlapping reads when length < 16 so every byte lands in a or b.
			a = read64(data)
			b = read64(data[length-8:])
		case length >= 4:
			a = read32(data)
			b = read32(data[length-4:])
		case length > 0:
			a = uint64(data[0])<<56 | uint64(data[length>>1])<<32 | uint64(data[length-1])
		}
		return finalize(a, b, seed, s, length)
	}

	seed ^= mum.Mix(seed^s[widePrime], s[1])
	p := data

	if len(p) > 128 {
		seed = absorbStripes(&p, seed, s)
	}

	if len(p) > 64 {
		seed = mum.Mix(read64(p)^s[0], read64(p[8:])^seed)
		seed = mum.Mix(read64(p[16:])^s[1], read64(p[24:])^seed)
		seed = mum.Mix(read64(p[32:])^s[2], read64(p[40:])^seed)
		seed = mum.Mix(read64(p[48:])^s[3], read64(p[56:])^seed)
		p = p[64:]
	}
	if len(p) > 32 {
		seed = mum.Mix(read64(p)^s[0], read64(p[8:])^seed)
		seed = mum.Mix(read64(p[16:])^s[1], read64(p[24:])^seed)
		p = p[32:]
	}
	if len(p) > 16 {
		seed = mum.Mix(read64(p)^s[0], read64(p[8:])^seed)
	}

	// The tail comes from the original buffer, so up to 16 bytes are absorbed twice.
	a = read64(data[length-16:]) ^ length
	b = read64(data[length-8:])
	return finalize(a, b, seed, s, length)
}

// absorbStripes consumes 128-byte stripes across eight lanes while more than 128 bytes
// remain, advances *p past them and returns the folded seed.
func absorbStripes(p *[]byte, seed uint64, s *Secret) uint64 {
	q := *p
	see1, see2, see3, see4 := seed, seed, seed, seed
	see5, see6, see7 := seed, seed, seed

	for len(q) > 128 {
		seed = mum.Mix(read64(q)^s[0], read64(q[8:])^seed)
		see1 = mum.Mix(read64(q[16:])^s[1], read64(q[24:])^see1)
		see2 = mum.Mix(read64(q[32:])^s[2], read64(q[40:])^see2)
		see3 = mum.Mix(read64(q[48:])^s[3], read64(q[56:])^see3)
		see4 = mum.Mix(read64(q[64:])^s[4], read64(q[72:])^see4)
		see5 = mum.Mix(read64(q[80:])^s[5], read64(q[88:])^see5)
		see6 = mum.Mix(read64(q[96:])^s[6], read64(q[104:])^see6)
		see7 = mum.Mix(read64(q[112:])^s[7], read64(q[120:])^see7)
		q = q[128:]
	}

	// Tree fold, not a left-to-right chain.
	seed ^= see1 ^ see4 ^ see5
	see2 ^= see3 ^ see6 ^ see7
	seed ^= see2

	*p = q
	return seed
}

func finalize(a, b, seed uint64, s *Secret, length uint64) uint64 {
	a ^= s[1]
	b ^= seed
	a, b = mum.Mum(a, b)
	return mum.Mix(a^s[8], b^s[1]^length)
}
