// Package quadres solves the quadratic congruence x² ≡ n (mod m), returning
// every residue class in [0, m) that satisfies it.
//
// The solver combines three classical pieces: the Tonelli–Shanks algorithm
// for prime moduli, Hensel lifting to extend prime solutions to prime-power
// moduli, and the Chinese Remainder Theorem to assemble solutions for an
// arbitrary composite modulus from its prime-power factors.
package quadres

// Re-export nothing here; users import the sub-packages directly.

// Version of the quadres Go implementation.
const Version = "1.0.0"

// API summary:
//
// General modulus:
//   - solver.Sqrtmod(n, m) - All square roots of n modulo a positive m
//   - solver.SqrtmodParallel(ctx, n, m) - Same result, per-factor lifts run concurrently
//
// Prime and prime-power moduli (primality is the caller's responsibility):
//   - solver.SqrtmodPrime(n, p) - Square roots modulo a prime
//   - solver.SqrtmodPrimePower(n, p, k) - Square roots modulo p^k
//   - tonelli.Solve(n, p) - Generic-width prime solver
//   - hensel.Lift(n, p, k) - Generic-width prime-power lifter
//
// Supporting pieces:
//   - factor.Factor(m) - Prime-power factorization of a 64-bit modulus
//   - factor.IsPrime(n) - Deterministic Miller-Rabin for 64-bit inputs
//   - crt.Pair / crt.Combine - Residue recombination across coprime moduli
//   - utils.MulMod, utils.PowMod, utils.InvMod - Overflow-safe modular arithmetic
