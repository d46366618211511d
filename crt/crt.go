// Package crt recombines residues across pairwise-coprime moduli.
package crt

import (
	"fmt"

	quadres "github.com/BackendStack21/quadres-go"
	"github.com/BackendStack21/quadres-go/utils"
)

// Pair returns the unique x in [0, m1*m2) with x ≡ r1 (mod m1) and
// x ≡ r2 (mod m2). The moduli must be coprime and their product must fit the
// value type; coprimality failure is a caller bug and panics. Intermediate
// products are reduced through the widened path, never by wraparound.
func Pair[T quadres.Unsigned](r1, m1, r2, m2 T) T {
	// Garner: x = r1 + m1 · ((r2 - r1) · m1⁻¹ mod m2)
	inv, err := utils.InvMod(m1%m2, m2)
	if err != nil {
		panic("crt: moduli are not coprime")
	}
	t := utils.MulMod(utils.SubMod(r2, r1%m2, m2), inv, m2)
	prod := m1 * m2
	return utils.AddMod(r1, utils.MulMod(m1, t, prod), prod)
}

// Combine folds a list of congruences into the unique residue modulo the
// product of the moduli, accumulating pairwise from a running modulus of 1.
func Combine[T quadres.Unsigned](residues, moduli []T) (T, error) {
	if len(residues) != len(moduli) {
		return 0, fmt.Errorf("crt: %d residues for %d moduli", len(residues), len(moduli))
	}
	accRes, accMod := T(0), T(1)
	for i := range residues {
		if moduli[i] == 0 {
			return 0, quadres.ErrNonPositiveModulus
		}
		accRes = Pair(accRes, accMod, residues[i], moduli[i])
		accMod *= moduli[i]
	}
	return accRes, nil
}
