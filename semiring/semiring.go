package semiring

import "math"

// BinaryOp combines two semiring elements into one.
type BinaryOp func(a, b float64) float64

// Ring bundles the operators of a commutative semiring.
//
// Invariants (caller-supplied for custom rings):
//   - Add and Mul are commutative and associative over the value domain.
//   - Zero is Add's identity; One is Mul's identity.
//   - Mul distributes over Add.
//
// InvMul is Mul's inverse operator and may be nil for rings without
// inverses (e.g. boolean). Operations that need it — normalization and
// conditioning — fail with tabfunc.ErrNoInverse when it is absent.
type Ring struct {
	// Add is the marginalization operator (⊕).
	Add BinaryOp

	// Zero is Add's identity element.
	Zero float64

	// Mul is the combination operator (⊗).
	Mul BinaryOp

	// InvMul undoes Mul: InvMul(Mul(a,b), b) == a. Nil when unavailable.
	InvMul BinaryOp

	// One is Mul's identity element.
	One float64
}

// HasInverse reports whether the ring carries an inverse-⊗ operator.
func (r Ring) HasInverse() bool { return r.InvMul != nil }

// SumProduct returns the probability ring (+, 0, ×, ÷, 1).
// Message passing under this ring computes exact marginals on trees.
func SumProduct() Ring {
	return Ring{
		Add:    func(a, b float64) float64 { return a + b },
		Zero:   0,
		Mul:    func(a, b float64) float64 { return a * b },
		InvMul: func(a, b float64) float64 { return a / b },
		One:    1,
	}
}

// MaxSum returns the optimization ring (max, −∞, +, −, 0).
// Message passing under this ring computes MAP / minimum-energy
// assignments (negate costs to minimize).
func MaxSum() Ring {
	return Ring{
		Add:    math.Max,
		Zero:   math.Inf(-1),
		Mul:    func(a, b float64) float64 { return a + b },
		InvMul: func(a, b float64) float64 { return a - b },
		One:    0,
	}
}

// MaxProduct returns the Viterbi ring (max, 0, ×, ÷, 1) over
// non-negative values.
func MaxProduct() Ring {
	return Ring{
		Add:    math.Max,
		Zero:   0,
		Mul:    func(a, b float64) float64 { return a * b },
		InvMul: func(a, b float64) float64 { return a / b },
		One:    1,
	}
}

// Boolean returns the constraint-satisfaction ring (∨, 0, ∧, 1) over
// {0, 1}. Any non-zero input counts as true. No inverse exists, so
// normalization is unavailable under this ring.
func Boolean() Ring {
	return Ring{
		Add: func(a, b float64) float64 {
			if a != 0 || b != 0 {
				return 1
			}

			return 0
		},
		Zero: 0,
		Mul: func(a, b float64) float64 {
			if a != 0 && b != 0 {
				return 1
			}

			return 0
		},
		InvMul: nil,
		One:    1,
	}
}
