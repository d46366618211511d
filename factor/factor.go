// Package factor provides prime-power factorization of 64-bit moduli.
//
// Small prime factors are stripped by trial division; what remains is split
// with Pollard's rho, using deterministic Miller-Rabin as the primality
// oracle. Rho walk parameters come from a seeded SHAKE256 stream, so
// factoring a given modulus always takes the same path.
package factor

import (
	"encoding/binary"
	"math/bits"
	"sort"

	quadres "github.com/BackendStack21/quadres-go"
	"github.com/BackendStack21/quadres-go/utils"
)

const (
	// DomainRho seeds the walk-parameter stream for Pollard's rho.
	DomainRho = "quadres-factor-rho-v1"

	// trialBound limits trial division; factors below it are found directly,
	// everything else goes to rho.
	trialBound = 1 << 12
)

// millerRabinBases makes the Miller-Rabin test deterministic for every
// 64-bit input (Sinclair/Jaeschke witness set).
var millerRabinBases = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsPrime reports whether n is prime. The result is exact for all uint64
// values; no probabilistic error is possible.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range millerRabinBases {
		if n == p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}
	d := n - 1
	s := 0
	for d&1 == 0 {
		d >>= 1
		s++
	}
	for _, a := range millerRabinBases {
		x := utils.PowMod(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}
		witness := true
		for i := 1; i < s; i++ {
			x = utils.MulMod(x, x, n)
			if x == n-1 {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// Factor returns the prime-power factorization of m, ascending by prime.
// Factor(1) and Factor(0) return an empty slice; callers validate the
// modulus before asking for its decomposition.
func Factor(m uint64) []quadres.PrimePower {
	counts := make(map[uint64]int)
	for m&1 == 0 && m > 0 {
		counts[2]++
		m >>= 1
	}
	for d := uint64(3); d < trialBound && d*d <= m; d += 2 {
		for m%d == 0 {
			counts[d]++
			m /= d
		}
	}
	if m > 1 {
		seed := make([]byte, 8)
		binary.LittleEndian.PutUint64(seed, m)
		split(m, counts, utils.NewStreamWithDomain(DomainRho, seed))
	}

	primes := make([]uint64, 0, len(counts))
	for p := range counts {
		primes = append(primes, p)
	}
	sort.Slice(primes, func(i, j int) bool { return primes[i] < primes[j] })

	factors := make([]quadres.PrimePower, len(primes))
	for i, p := range primes {
		pow := uint64(1)
		for j := 0; j < counts[p]; j++ {
			pow *= p
		}
		factors[i] = quadres.PrimePower{Prime: p, Exp: counts[p], Pow: pow}
	}
	return factors
}

// split recursively decomposes n (odd, free of factors below trialBound)
// into the counts map.
func split(n uint64, counts map[uint64]int, stream *utils.Stream) {
	if n == 1 {
		return
	}
	if IsPrime(n) {
		counts[n]++
		return
	}
	// Perfect squares defeat rho's difference trick; peel them directly.
	if r := isqrt(n); r*r == n {
		split(r, counts, stream)
		split(r, counts, stream)
		return
	}
	d := rho(n, stream)
	split(d, counts, stream)
	split(n/d, counts, stream)
}

// rho finds a nontrivial factor of an odd composite n using Pollard's rho
// with Floyd cycle detection. Each failed round restarts the walk with fresh
// parameters from the stream.
func rho(n uint64, stream *utils.Stream) uint64 {
	for {
		x := 2 + stream.Uint64n(n-3)
		c := 1 + stream.Uint64n(n-1)
		y := x
		d := uint64(1)
		for d == 1 {
			x = step(x, c, n)
			y = step(step(y, c, n), c, n)
			d = gcd(diff(x, y), n)
		}
		if d != n {
			return d
		}
	}
}

// step advances the rho walk: x² + c mod n.
func step(x, c, n uint64) uint64 {
	return utils.AddMod(utils.MulMod(x, x, n), c, n)
}

func diff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// isqrt returns the integer square root of n.
func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	r := uint64(1) << ((bits.Len64(n)+1)/2)
	for {
		s := (r + n/r) >> 1
		if s >= r {
			return r
		}
		r = s
	}
}
