// Package test provides integration tests for the quadres implementation.
// These tests verify cross-component behavior: factorization feeding the
// lifting stage, lifted roots feeding recombination, and the CLI surface.
package test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"testing"

	"github.com/BackendStack21/quadres-go/factor"
	"github.com/BackendStack21/quadres-go/solver"
)

// bruteForce enumerates every root of x² ≡ n (mod m) directly.
func bruteForce(n int64, m uint64) []uint64 {
	want := uint64(((n % int64(m)) + int64(m)) % int64(m))
	var roots []uint64
	for x := uint64(0); x < m; x++ {
		if x*x%m == want {
			roots = append(roots, x)
		}
	}
	return roots
}

func sortedCopy(roots []uint64) []uint64 {
	out := append([]uint64(nil), roots...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equalRoots(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestSolverMatchesBruteForce compares the full pipeline against direct
// enumeration for every residue over a range of small moduli.
func TestSolverMatchesBruteForce(t *testing.T) {
	for m := int64(1); m <= 128; m++ {
		for n := int64(0); n < m; n++ {
			got, err := solver.Sqrtmod(n, m)
			if err != nil {
				t.Fatalf("Sqrtmod(%d, %d) failed: %v", n, m, err)
			}
			want := bruteForce(n, uint64(m))
			if !equalRoots(sortedCopy(got), want) {
				t.Errorf("Sqrtmod(%d, %d) = %v, want %v", n, m, sortedCopy(got), want)
			}
		}
	}
}

// TestRootCountMatchesFactorProduct verifies that the number of roots mod m
// equals the product of the per-prime-power root counts.
func TestRootCountMatchesFactorProduct(t *testing.T) {
	cases := []struct {
		n int64
		m int64
	}{
		{1240, 289032},
		{4, 45},
		{19, 45},
		{1, 120},
		{49, 600},
		{0, 360},
	}

	for _, tc := range cases {
		roots, err := solver.Sqrtmod(tc.n, tc.m)
		if err != nil {
			t.Fatalf("Sqrtmod(%d, %d) failed: %v", tc.n, tc.m, err)
		}

		product := 1
		for _, f := range factor.Factor(uint64(tc.m)) {
			partial, err := solver.SqrtmodPrimePower(tc.n, int64(f.Prime), f.Exp)
			if err != nil {
				t.Fatalf("SqrtmodPrimePower(%d, %d, %d) failed: %v", tc.n, f.Prime, f.Exp, err)
			}
			product *= len(partial)
		}

		if len(roots) != product {
			t.Errorf("Sqrtmod(%d, %d) has %d roots, prime-power product gives %d",
				tc.n, tc.m, len(roots), product)
		}
	}
}

// TestParallelAgreesWithSequential runs the concurrent solver over the same
// inputs as the sequential one and requires identical root sets.
func TestParallelAgreesWithSequential(t *testing.T) {
	cases := []struct {
		n int64
		m int64
	}{
		{1240, 289032},
		{23, 200},
		{19, 45},
		{7, 3 * 3 * 3 * 3 * 5 * 7 * 11},
	}

	for _, tc := range cases {
		seq, err := solver.Sqrtmod(tc.n, tc.m)
		if err != nil {
			t.Fatalf("Sqrtmod(%d, %d) failed: %v", tc.n, tc.m, err)
		}
		par, err := solver.SqrtmodParallel(context.Background(), tc.n, tc.m)
		if err != nil {
			t.Fatalf("SqrtmodParallel(%d, %d) failed: %v", tc.n, tc.m, err)
		}
		if !equalRoots(sortedCopy(seq), sortedCopy(par)) {
			t.Errorf("parallel roots %v differ from sequential %v for (%d, %d)",
				sortedCopy(par), sortedCopy(seq), tc.n, tc.m)
		}
	}
}

// TestFactorFeedsSolver checks that every factorization the solver consumes
// reconstructs the modulus exactly.
func TestFactorFeedsSolver(t *testing.T) {
	moduli := []uint64{2, 8, 45, 200, 289032, 999966000289, 1 << 40}
	for _, m := range moduli {
		product := uint64(1)
		for _, f := range factor.Factor(m) {
			if !factor.IsPrime(f.Prime) {
				t.Errorf("Factor(%d) returned composite base %d", m, f.Prime)
			}
			if f.Pow == 0 || m%f.Pow != 0 {
				t.Errorf("Factor(%d): prime power %d does not divide the modulus", m, f.Pow)
			}
			product *= f.Pow
		}
		if product != m {
			t.Errorf("Factor(%d) reconstructs to %d", m, product)
		}
	}
}

// TestCLICommands tests CLI command integration.
func TestCLICommands(t *testing.T) {
	// Build CLI if not already built
	cliPath := filepath.Join("..", "cmd", "quadres-cli", "quadres-cli")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		// Try to build
		cmd := exec.Command("go", "build", "-o", cliPath, "./cmd/quadres-cli")
		if err := cmd.Run(); err != nil {
			t.Skipf("Cannot build CLI: %v", err)
		}
	}

	// Create temporary directory for test files
	tmpDir, err := os.MkdirTemp("", "quadres-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("solve-json", func(t *testing.T) {
		outFile := filepath.Join(tmpDir, "solve.json")

		cmd := exec.Command(cliPath, "solve", "--n", "1240", "--m", "289032",
			"--format", "json", "--output", outFile)
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("solve failed: %v\nOutput: %s", err, output)
		}

		data, err := os.ReadFile(outFile)
		if err != nil {
			t.Fatalf("Output file not created: %v", err)
		}

		var export struct {
			N     int64    `json:"n"`
			M     uint64   `json:"m"`
			Roots []uint64 `json:"roots"`
			Count int      `json:"count"`
		}
		if err := json.Unmarshal(data, &export); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if export.Count != 8 {
			t.Errorf("count = %d, want 8", export.Count)
		}
		for _, r := range export.Roots {
			if r*r%289032 != 1240 {
				t.Errorf("root %d does not square to 1240 mod 289032", r)
			}
		}
	})

	t.Run("prime", func(t *testing.T) {
		cmd := exec.Command(cliPath, "prime", "--n", "16", "--p", "101")
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("prime failed: %v\nOutput: %s", err, output)
		}
		if len(output) == 0 {
			t.Error("prime produced no output")
		}
	})

	t.Run("factor", func(t *testing.T) {
		cmd := exec.Command(cliPath, "factor", "--m", "289032")
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("factor failed: %v\nOutput: %s", err, output)
		}
		if len(output) == 0 {
			t.Error("factor produced no output")
		}
	})

	t.Run("invalid-modulus", func(t *testing.T) {
		cmd := exec.Command(cliPath, "solve", "--n", "4", "--m", "0")
		if err := cmd.Run(); err == nil {
			t.Error("solve with zero modulus should exit non-zero")
		}
	})
}
