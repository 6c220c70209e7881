// Package tabfunc implements tabulated functions over named
// finite-domain variables — the value type every gdl algorithm
// operates on — together with the semiring-parameterized algebra
// that combines them: join, marginalize, eliminate, normalize.
//
// 🚀 What is a tabulated function?
//
//	A function f(x1,…,xn) whose variables each range over a finite,
//	ordered domain, stored as a dense table holding one semiring value
//	per joint assignment.  Probability tables, energy potentials and
//	constraint relations are all tabulated functions; only the ring
//	interpreting the values changes.
//
// ✨ Key features:
//   - Explicit variable order carried on every Func — the table layout
//     never depends on map iteration order
//   - Immutable values: every operation returns a fresh Func
//   - Dense strided storage, same indexing discipline as a row-major
//     matrix
//   - Ring-parameterized operations: Join (⊗ over a relational join),
//     MarginalizeOut/Marginalize (⊕ over a variable's domain),
//     Eliminate (conditioning, optionally normalized), Normalize
//   - Brute-force ArgMax for MAP queries and reference checks
//
// ⚙️ Usage:
//
//	import (
//	    "github.com/katalvlaran/gdl/semiring"
//	    "github.com/katalvlaran/gdl/tabfunc"
//	)
//
//	ring := semiring.SumProduct()
//	dom := []tabfunc.Value{1, 2, 3}
//	f1, _ := tabfunc.Tabulate([]string{"x1", "x2"},
//	    map[string][]tabfunc.Value{"x1": dom, "x2": dom},
//	    func(a tabfunc.Assignment) float64 {
//	        return float64(a["x1"].(int) * a["x2"].(int))
//	    })
//	f2, _ := tabfunc.Tabulate(...)
//	c, _ := tabfunc.Join(f1, f2, ring)
//	m, _ := tabfunc.MarginalizeOut(c, ring, "x2")
//	v, _ := m.At(tabfunc.Assignment{"x1": 2, "x3": 3}) // 84
//
// Performance:
//
//   - Join: O(Π|domains in the union|) time and memory — callers are
//     responsible for keeping the number of live variables small; no
//     join-order optimization is performed here.
//   - MarginalizeOut: O(|table|) time.
//
// Errors are strict package-prefixed sentinels declared in types.go.
package tabfunc
