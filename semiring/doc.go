// Package semiring defines the commutative semiring abstraction that
// parameterizes every algorithm in gdl.
//
// 🚀 What is a semiring?
//
//	An algebraic structure (⊕, 0, ⊗, 1) where ⊕ and ⊗ are commutative,
//	associative binary operators, 0 is the identity of ⊕, 1 is the
//	identity of ⊗, and ⊗ distributes over ⊕.  Swapping the semiring
//	turns one message-passing algorithm into many:
//	  • sum-product  (+, 0, ×, 1)      — probabilistic marginals
//	  • max-sum      (max, −∞, +, 0)   — MAP / minimum-energy assignments
//	  • max-product  (max, 0, ×, 1)    — Viterbi-style most likely paths
//	  • boolean      (∨, 0, ∧, 1)      — constraint satisfaction
//
// ✨ Key features:
//   - Ring is a plain value type: four operators plus an optional inverse
//   - InvMul may be nil — rings without inverses simply cannot normalize
//   - Stock constructors for the four classic rings above
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/gdl/semiring"
//
//	ring := semiring.SumProduct()
//	total := ring.Add(0.2, 0.3)  // 0.5
//	joint := ring.Mul(0.2, 0.3)  // 0.06
//
// The laws (commutativity, associativity, identities, distributivity)
// are the caller's obligation for custom rings; the stock rings are
// property-tested in semiring_test.go.
package semiring
