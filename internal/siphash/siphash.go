// Package siphash implements SipHash-2-4 (Aumasson & Bernstein), the
// edge-generating hash for the Cuckaroo-29 graph.
package siphash

import "math/bits"

// Keys holds the four 64-bit SipHash state keys derived from a job header.
type Keys struct {
	K0, K1, K2, K3 uint64
}

// New builds a Keys value from four raw key words.
func New(k0, k1, k2, k3 uint64) Keys {
	return Keys{K0: k0, K1: k1, K2: k2, K3: k3}
}

// ErrorType enumerates the ways siphash key material can be rejected.
type ErrorType int

const (
	// ErrorMalformedKeys indicates the key material could not be derived
	// from the job blob (too short, truncated hash, etc).
	ErrorMalformedKeys ErrorType = iota
)

// HashError is returned when key derivation fails. An all-zero key set is
// permitted (it simply yields a degenerate graph) and is not an error.
type HashError struct {
	Type    ErrorType
	Message string
}

func (e *HashError) Error() string {
	return "siphash: " + e.Message
}

// sipRound performs one SIPROUND: the fixed sequence of adds, rotates and
// XORs from the reference algorithm, with rotate amounts 13, 32, 16, 21,
// 17, 32 in the order they appear below.
func sipRound(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v1 = bits.RotateLeft64(v1, 13)
	v1 ^= v0
	v0 = bits.RotateLeft64(v0, 32)

	v2 += v3
	v3 = bits.RotateLeft64(v3, 16)
	v3 ^= v2

	v0 += v3
	v3 = bits.RotateLeft64(v3, 21)
	v3 ^= v0

	v2 += v1
	v1 = bits.RotateLeft64(v1, 17)
	v1 ^= v2
	v2 = bits.RotateLeft64(v2, 32)

	return v0, v1, v2, v3
}

// Hash computes SipHash-2-4 over a single 64-bit message word (the nonce),
// bit-exact with the reference implementation: 2 compression rounds, then
// the 0xff finalization constant XORed into v2, then 4 finalization rounds.
func (k Keys) Hash(nonce uint64) uint64 {
	v0, v1, v2, v3 := k.K0, k.K1, k.K2, k.K3

	v3 ^= nonce

	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)

	v0 ^= nonce
	v2 ^= 0xff

	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)

	return v0 ^ v1 ^ v2 ^ v3
}
