// Package smchash implements smcHash, a fast non-cryptographic 64-bit hash for byte
// strings, together with its companion PRNG and a generator for custom secret tables.
//
// # Hashing
//
// Digests depend only on the input bytes, the seed and the secret table, and are
// bit-identical to the C, Rust, Java and Python implementations:
//
//	h := smchash.Hash([]byte("Hello, World!")) // 0x25bb0982c5c0de6e
//	h = smchash.HashSeeded(data, 12345)
//
// Inputs are processed in tiers by length: up to 3 bytes, up to 16 bytes with two
// overlapping reads, and longer inputs in 16-byte blocks, with eight parallel lanes
// over 128-byte stripes once the input exceeds 128 bytes.
//
// smcHash is not a cryptographic hash. It offers no preimage or collision
// resistance against an adversary who knows the secret.
//
// # Custom secrets
//
// MakeSecret derives a table of nine odd primes with 32 bits set each, pairwise 32 bits
// apart, from a 64-bit seed. Instances hashing with different tables produce unrelated
// digests, which defeats precomputed flooding inputs:
//
//	secret, err := smchash.MakeSecret(deploymentSeed)
//	h := smchash.HashSecret(data, 0, &secret)
//
// HashSecret primes long inputs with a different table slot than HashSeeded, so the two
// disagree for inputs over 16 bytes even when given the default table.
//
// Generation is rejection sampling and usually takes well under a second;
// MakeSecretContext bounds it with per-attempt deadlines.
//
// # Random numbers
//
// Step and Rand expose the generator directly; Source plugs it into math/rand/v2.
// The generator passes BigCrush and PractRand but is predictable from its output.
package smchash
