package solver

import (
	"testing"

	"github.com/BackendStack21/quadres-go/factor"
	"github.com/BackendStack21/quadres-go/utils"
)

// FuzzSqrtmod tests the composite solver with random inputs
func FuzzSqrtmod(f *testing.F) {
	// Add seed corpus
	f.Add(int64(4), int64(5))
	f.Add(int64(1240), int64(289032))
	f.Add(int64(23), int64(200))
	f.Add(int64(-3), int64(7))
	f.Add(int64(0), int64(1))
	f.Add(int64(1), int64(0))
	f.Add(int64(1), int64(-6))

	f.Fuzz(func(t *testing.T, n, m int64) {
		roots, err := Sqrtmod(n, m)
		if m <= 0 {
			if err == nil {
				t.Fatalf("Sqrtmod(%d, %d) accepted a non-positive modulus", n, m)
			}
			return
		}
		if err != nil {
			t.Fatalf("Sqrtmod(%d, %d) failed: %v", n, m, err)
		}

		want := reduce(n, uint64(m))
		for _, r := range roots {
			if r >= uint64(m) {
				t.Errorf("root %d is not reduced mod %d", r, m)
			}
			if utils.MulMod(r, r, uint64(m)) != want {
				t.Errorf("root %d does not square to %d mod %d", r, want, m)
			}
		}
	})
}

// FuzzSqrtmodPrimePower tests the prime-power solver with random inputs
func FuzzSqrtmodPrimePower(f *testing.F) {
	// Add seed corpus
	f.Add(int64(1), int64(2), 3)
	f.Add(int64(7), int64(3), 4)
	f.Add(int64(0), int64(5), 2)
	f.Add(int64(3), int64(3), 41)
	f.Add(int64(2), int64(7), 0)

	f.Fuzz(func(t *testing.T, n, p int64, k int) {
		if p > 0 && !factor.IsPrime(uint64(p)) {
			// Primality is a documented precondition.
			return
		}
		roots, err := SqrtmodPrimePower(n, p, k)
		if err != nil {
			return
		}
		q := uint64(1)
		for i := 0; i < k; i++ {
			q *= uint64(p)
		}
		want := reduce(n, q)
		for _, r := range roots {
			if utils.MulMod(r, r, q) != want {
				t.Errorf("root %d does not square to %d mod %d", r, want, q)
			}
		}
	})
}
