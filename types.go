package quadres

import "errors"

// Unsigned is the set of value types accepted by the modular arithmetic
// helpers and the generic solvers. All widths up to 64 bits are supported;
// products are always widened through a 128-bit intermediate before
// reduction, so correctness never depends on native wraparound.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// PrimePower is one factor p^k of a modulus decomposition.
type PrimePower struct {
	Prime uint64 `json:"prime"` // p
	Exp   int    `json:"exp"`   // k
	Pow   uint64 `json:"pow"`   // p^k
}

var (
	// ErrNonPositiveModulus indicates a modulus that is zero or negative.
	ErrNonPositiveModulus = errors.New("modulus must be positive")

	// ErrNotInvertible indicates a modular inverse of a value that is not
	// coprime to the modulus.
	ErrNotInvertible = errors.New("value is not invertible modulo m")
)
