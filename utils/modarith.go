// Package utils provides utility functions for quadres.
// This file contains overflow-safe modular arithmetic on fixed-width
// unsigned integers. Every product goes through a 128-bit intermediate
// before reduction, so results never depend on native wraparound.

package utils

import (
	"math/bits"

	quadres "github.com/BackendStack21/quadres-go"
)

// AddMod returns (a + b) mod m. The carry out of the 64-bit addition is
// folded back in, so the sum is exact even when m is close to the type limit.
func AddMod[T quadres.Unsigned](a, b, m T) T {
	x := uint64(a % m)
	y := uint64(b % m)
	s, c := bits.Add64(x, y, 0)
	if c == 1 || s >= uint64(m) {
		s -= uint64(m)
	}
	return T(s)
}

// SubMod returns (a - b) mod m, always in [0, m).
func SubMod[T quadres.Unsigned](a, b, m T) T {
	a %= m
	b %= m
	if a < b {
		return m - b + a
	}
	return a - b
}

// MulMod returns (a * b) mod m using a 128-bit intermediate product.
func MulMod[T quadres.Unsigned](a, b, m T) T {
	hi, lo := bits.Mul64(uint64(a%m), uint64(b%m))
	_, rem := bits.Div64(hi, lo, uint64(m))
	return T(rem)
}

// PowMod returns base^exp mod m by square-and-multiply over MulMod.
func PowMod[T quadres.Unsigned](base T, exp uint64, m T) T {
	if m == 1 {
		return 0
	}
	result := T(1)
	b := base % m
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, b, m)
		}
		b = MulMod(b, b, m)
		exp >>= 1
	}
	return result
}

// InvMod returns a^(-1) mod m using the extended Euclidean algorithm.
// It fails with quadres.ErrNotInvertible when a and m are not coprime.
func InvMod[T quadres.Unsigned](a T, m T) (T, error) {
	if m == 0 {
		return 0, quadres.ErrNotInvertible
	}
	if m == 1 {
		return 0, nil
	}
	// Remainders stay unsigned; Bezout coefficients for the left argument
	// are bounded by m/2, which fits in int64 for any 64-bit modulus.
	r0, r1 := uint64(m), uint64(a%m)
	s0, s1 := int64(0), int64(1)
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		s0, s1 = s1, s0-int64(q)*s1
	}
	if r0 != 1 {
		return 0, quadres.ErrNotInvertible
	}
	if s0 < 0 {
		return T(uint64(m) - uint64(-s0)), nil
	}
	return T(uint64(s0)), nil
}
