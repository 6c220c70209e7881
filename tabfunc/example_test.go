package tabfunc_test

import (
	"fmt"

	"github.com/katalvlaran/gdl/semiring"
	"github.com/katalvlaran/gdl/tabfunc"
)

// ExampleJoin demonstrates the classic two-factor chain: join
// f1(x1,x2)=x1·x2 with f2(x2,x3)=x2·x3 under sum-product, sum out the
// shared variable and evaluate the result.
func ExampleJoin() {
	ring := semiring.SumProduct()
	dom := []tabfunc.Value{1, 2, 3}

	f1, _ := tabfunc.Tabulate([]string{"x1", "x2"},
		map[string][]tabfunc.Value{"x1": dom, "x2": dom},
		func(a tabfunc.Assignment) float64 {
			return float64(a["x1"].(int) * a["x2"].(int))
		})
	f2, _ := tabfunc.Tabulate([]string{"x2", "x3"},
		map[string][]tabfunc.Value{"x2": dom, "x3": dom},
		func(a tabfunc.Assignment) float64 {
			return float64(a["x2"].(int) * a["x3"].(int))
		})

	c, _ := tabfunc.Join(f1, f2, ring)
	m, _ := tabfunc.MarginalizeOut(c, ring, "x2")

	v, _ := m.At(tabfunc.Assignment{"x1": 2, "x3": 3})
	fmt.Printf("vars=%v m(2,3)=%.0f\n", m.Vars(), v)
	// Output:
	// vars=[x1 x3] m(2,3)=84
}

// ExampleEliminate conditions a tiny joint distribution on evidence
// and reads off the normalized posterior.
func ExampleEliminate() {
	ring := semiring.SumProduct()
	joint, _ := tabfunc.FromTable(
		[]string{"Rain", "Wet"},
		map[string][]tabfunc.Value{"Rain": {true, false}, "Wet": {true, false}},
		[]float64{0.18, 0.02, 0.08, 0.72}, // P(Rain,Wet)
	)

	// Observe Wet=true, normalized: P(Rain | Wet=true).
	posterior, _ := tabfunc.Eliminate(joint, ring, tabfunc.Assignment{"Wet": true}, true)
	p, _ := posterior.At(tabfunc.Assignment{"Rain": true})
	fmt.Printf("P(Rain|Wet) = %.3f\n", p)
	// Output:
	// P(Rain|Wet) = 0.692
}
