// Package hensel lifts square roots modulo a prime to roots modulo a prime
// power.
package hensel

import (
	quadres "github.com/BackendStack21/quadres-go"
	"github.com/BackendStack21/quadres-go/tonelli"
	"github.com/BackendStack21/quadres-go/utils"
)

// Lift returns every residue r in [0, p^k) with r*r ≡ n (mod p^k).
// p must be prime (unchecked, result unspecified otherwise) and k at least 1;
// p^k must fit the value type. The lift walks one exponent level at a time
// rather than recursing, so call-stack depth is independent of k.
//
// Where the derivative 2r is invertible mod p a Newton step produces the
// unique lift of each root. Where it vanishes (p divides r, or p = 2), a root
// survives only if it already satisfies the congruence at the next level, and
// then every translate by the previous modulus survives with it; solution
// sets can grow past two elements this way.
func Lift[T quadres.Unsigned](n, p T, k int) []T {
	if k < 1 {
		panic("hensel: exponent must be at least 1")
	}

	roots := tonelli.Solve(n%p, p)
	q := p
	for j := 2; j <= k; j++ {
		if q > ^T(0)/p {
			panic("hensel: prime power overflows the value type")
		}
		q *= p
		nq := n % q

		next := make([]T, 0, len(roots))
		for _, r := range roots {
			if p != 2 && r%p != 0 {
				// Non-ramified: s = r - (r² - n) · (2r)⁻¹ mod q.
				inv, err := utils.InvMod(utils.AddMod(r, r, q), q)
				if err != nil {
					panic("hensel: 2r not invertible although p does not divide r")
				}
				fr := utils.SubMod(utils.MulMod(r, r, q), nq, q)
				next = append(next, utils.SubMod(r, utils.MulMod(fr, inv, q), q))
				continue
			}
			// Ramified: r lifts exactly when it already solves the congruence
			// mod q, and then so does every r + t·p^(j-1).
			if utils.MulMod(r, r, q) == nq {
				prev := q / p
				for t := T(0); t < p; t++ {
					next = append(next, r+t*prev)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		roots = next
	}
	return roots
}
