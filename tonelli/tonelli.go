// Package tonelli computes square roots modulo a prime.
//
// Solve implements the Tonelli-Shanks algorithm with a closed-form fast path
// for primes congruent to 3 mod 4. Primality of p is a precondition, not a
// runtime check: the result is unspecified when p is composite.
package tonelli

import (
	quadres "github.com/BackendStack21/quadres-go"
	"github.com/BackendStack21/quadres-go/utils"
)

// Solve returns every residue r in [0, p) with r*r ≡ n (mod p) for prime p.
// The result is {0} when p divides n, {1} when p = 2 and n is odd, empty when
// n is a quadratic non-residue, and a pair {r, p-r} otherwise. It never
// contains duplicates.
func Solve[T quadres.Unsigned](n, p T) []T {
	n %= p
	if n == 0 {
		return []T{0}
	}
	if p == 2 {
		return []T{1}
	}

	// Euler's criterion: n^((p-1)/2) is p-1 exactly when n is a non-residue.
	if utils.PowMod(n, uint64(p>>1), p) == p-1 {
		return nil
	}

	if p&3 == 3 {
		// r = n^((p+1)/4); written as p>>2 + 1 so the exponent cannot wrap.
		r := utils.PowMod(n, uint64(p>>2)+1, p)
		return []T{r, p - r}
	}

	// p - 1 = q * 2^s with q odd
	q := p - 1
	s := 0
	for q&1 == 0 {
		q >>= 1
		s++
	}

	// Any quadratic non-residue serves as the progress generator; for prime p
	// one turns up among the small integers after O(log p) trials.
	z := T(2)
	for utils.PowMod(z, uint64(p>>1), p) != p-1 {
		z++
	}

	m := s
	c := utils.PowMod(z, uint64(q), p)
	t := utils.PowMod(n, uint64(q), p)
	r := utils.PowMod(n, uint64(q>>1)+1, p) // (q+1)/2 with q odd

	for t != 1 {
		// Least i with t^(2^i) ≡ 1; strictly below m whenever a root exists.
		i := 0
		for u := t; u != 1; u = utils.MulMod(u, u, p) {
			i++
			if i == m {
				panic("tonelli: non-residue slipped past Euler's criterion; p is not prime")
			}
		}

		b := c
		for j := 0; j < m-i-1; j++ {
			b = utils.MulMod(b, b, p)
		}
		m = i
		c = utils.MulMod(b, b, p)
		t = utils.MulMod(t, c, p)
		r = utils.MulMod(r, b, p)
	}
	return []T{r, p - r}
}
