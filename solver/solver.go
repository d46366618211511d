// Package solver answers quadratic congruences x² ≡ n (mod m) for arbitrary
// positive 64-bit moduli.
//
// The modulus is decomposed into prime-power factors, each factor is solved
// independently by Hensel lifting over the Tonelli-Shanks base case, and the
// per-factor solution sets are folded together through CRT combination. The
// final set is unsorted; its size is the product of the per-factor set sizes.
package solver

import (
	"context"
	"fmt"

	quadres "github.com/BackendStack21/quadres-go"
	"github.com/BackendStack21/quadres-go/crt"
	"github.com/BackendStack21/quadres-go/factor"
	"github.com/BackendStack21/quadres-go/hensel"
	"github.com/BackendStack21/quadres-go/tonelli"
	"golang.org/x/sync/errgroup"
)

// reduce maps x into [0, m), handling negative inputs. The modulus may
// exceed MaxInt64, so the arithmetic stays unsigned.
func reduce(x int64, m uint64) uint64 {
	if x >= 0 {
		return uint64(x) % m
	}
	// uint64(-x) is the magnitude of x even at MinInt64.
	r := uint64(-x) % m
	if r == 0 {
		return 0
	}
	return m - r
}

// Sqrtmod returns every residue x in [0, m) with x² ≡ n (mod m), unsorted.
// It fails with quadres.ErrNonPositiveModulus when m ≤ 0 and returns an
// empty set when n is not a square modulo m.
func Sqrtmod(n, m int64) ([]uint64, error) {
	if m <= 0 {
		return nil, quadres.ErrNonPositiveModulus
	}
	mm := uint64(m)
	if mm == 1 {
		return []uint64{0}, nil
	}
	nn := reduce(n, mm)

	factors := factor.Factor(mm)
	sets := make([][]uint64, len(factors))
	for i, f := range factors {
		sets[i] = hensel.Lift(nn%f.Pow, f.Prime, f.Exp)
		if len(sets[i]) == 0 {
			// One unsolvable factor empties the whole product.
			return nil, nil
		}
	}
	return combineAll(factors, sets), nil
}

// SqrtmodParallel computes the same set as Sqrtmod but runs the per-factor
// lifts concurrently; the fold itself is cheap and stays sequential. The
// context bounds the fan-out, not the algorithm: a cancelled context stops
// unstarted work and surfaces ctx.Err().
func SqrtmodParallel(ctx context.Context, n, m int64) ([]uint64, error) {
	if m <= 0 {
		return nil, quadres.ErrNonPositiveModulus
	}
	mm := uint64(m)
	if mm == 1 {
		return []uint64{0}, nil
	}
	nn := reduce(n, mm)

	factors := factor.Factor(mm)
	sets := make([][]uint64, len(factors))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range factors {
		i, f := i, f
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			sets[i] = hensel.Lift(nn%f.Pow, f.Prime, f.Exp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, s := range sets {
		if len(s) == 0 {
			return nil, nil
		}
	}
	return combineAll(factors, sets), nil
}

// SqrtmodPrime returns the roots of x² ≡ n (mod p) for prime p. Primality is
// a precondition, not a runtime check; the result is unspecified when it is
// violated.
func SqrtmodPrime(n, p int64) ([]uint64, error) {
	if p <= 0 {
		return nil, quadres.ErrNonPositiveModulus
	}
	pp := uint64(p)
	return tonelli.Solve(reduce(n, pp), pp), nil
}

// SqrtmodPrimePower returns the roots of x² ≡ n (mod p^k) for prime p and
// k ≥ 1. Primality of p is the caller's responsibility.
func SqrtmodPrimePower(n, p int64, k int) ([]uint64, error) {
	if p <= 0 {
		return nil, quadres.ErrNonPositiveModulus
	}
	if k < 1 {
		return nil, fmt.Errorf("solver: exponent %d must be at least 1", k)
	}
	pp := uint64(p)
	q := uint64(1)
	for i := 0; i < k; i++ {
		if q > ^uint64(0)/pp {
			return nil, fmt.Errorf("solver: %d^%d exceeds 64 bits", p, k)
		}
		q *= pp
	}
	return hensel.Lift(reduce(n, q), pp, k), nil
}

// combineAll folds per-factor solution sets into solutions modulo the full
// product, taking the CRT combination across the Cartesian product one
// factor at a time.
func combineAll(factors []quadres.PrimePower, sets [][]uint64) []uint64 {
	running := []uint64{0}
	partial := uint64(1)
	for i, f := range factors {
		next := make([]uint64, 0, len(running)*len(sets[i]))
		for _, fr := range sets[i] {
			for _, rr := range running {
				next = append(next, crt.Pair(rr, partial, fr, f.Pow))
			}
		}
		running = next
		partial *= f.Pow
	}
	return running
}
