package factorgraph_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gdl/factorgraph"
	"github.com/katalvlaran/gdl/semiring"
	"github.com/katalvlaran/gdl/tabfunc"
)

// randFunc tabulates a factor over the given variables with seeded
// pseudo-random values in [0,1) — max-sum energies with a unique
// optimum almost surely.
func randFunc(t *testing.T, rng *rand.Rand, vars []string, dom []tabfunc.Value) *tabfunc.Func {
	t.Helper()
	domains := make(map[string][]tabfunc.Value, len(vars))
	for _, v := range vars {
		domains[v] = dom
	}
	f, err := tabfunc.Tabulate(vars, domains, func(tabfunc.Assignment) float64 {
		return rng.Float64()
	})
	require.NoError(t, err)

	return f
}

// mapByMessagePassing runs the extended schedule to quiescence and
// reads back every variable's assignment.
func mapByMessagePassing(t *testing.T, g *factorgraph.Graph, vars []string) tabfunc.Assignment {
	t.Helper()
	_, err := g.RunExtended()
	require.NoError(t, err)

	out := make(tabfunc.Assignment, len(vars))
	for _, name := range vars {
		val, err := g.MAPAssignment(name)
		require.NoError(t, err)
		out[name] = val
	}

	return out
}

// requireGlobalOptimum checks the recovered assignment attains the
// brute-force maximum of the merged joint factor.
func requireGlobalOptimum(t *testing.T, g *factorgraph.Graph, got tabfunc.Assignment) {
	t.Helper()
	joint, err := g.Factorize()
	require.NoError(t, err)
	_, best := joint.ArgMax()
	gotVal, err := joint.At(got)
	require.NoError(t, err)
	require.InDelta(t, best, gotVal, 1e-9, "assignment %v is not globally optimal", got)
}

// TestRunExtended_SplitCycleMAP reproduces the canonical split-cycle
// scenario: six variables chained by five pairwise factors, with the
// cycle-closing factor split into two halves — one wired locally to
// x1 with x6 remote, the mirror half locally to x6 with x1 remote.
// The extended protocol must reach quiescence and recover the same
// MAP assignment as a brute-force argmax over the merged joint.
func TestRunExtended_SplitCycleMAP(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	dom := []tabfunc.Value{0, 1}
	vars := []string{"x1", "x2", "x3", "x4", "x5", "x6"}

	g := factorgraph.New(semiring.MaxSum())
	for _, name := range vars {
		_, err := g.AddVariable(name, dom)
		require.NoError(t, err)
	}
	chain := [][2]string{{"x1", "x2"}, {"x2", "x3"}, {"x3", "x4"}, {"x4", "x5"}, {"x5", "x6"}}
	for _, e := range chain {
		_, err := g.AddFactorNode("a"+e[0][1:]+e[1][1:], randFunc(t, rng, []string{e[0], e[1]}, dom), []string{e[0], e[1]}, nil)
		require.NoError(t, err)
	}
	// Split closing factor: a16^1 local at x1 / remote at x6, a16^6 mirrored.
	_, err := g.AddFactorNode("a16^1", randFunc(t, rng, []string{"x1", "x6"}, dom), []string{"x1"}, []string{"x6"})
	require.NoError(t, err)
	_, err = g.AddFactorNode("a16^6", randFunc(t, rng, []string{"x1", "x6"}, dom), []string{"x6"}, []string{"x1"})
	require.NoError(t, err)

	got := mapByMessagePassing(t, g, vars)
	requireGlobalOptimum(t, g, got)
}

// TestRunExtended_DoubleCycleMAP exercises the harder topology with
// two cuts: an 8-variable chain whose ends are tied back by a split
// pairwise factor (x1/x4) and a split three-variable factor
// (x4,x5 local / x8 remote).
func TestRunExtended_DoubleCycleMAP(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	dom := []tabfunc.Value{0, 1, 2}
	vars := []string{"x1", "x2", "x3", "x4", "x5", "x6", "x7", "x8"}

	g := factorgraph.New(semiring.MaxSum())
	for _, name := range vars {
		_, err := g.AddVariable(name, dom)
		require.NoError(t, err)
	}
	for _, e := range [][2]string{{"x1", "x2"}, {"x2", "x3"}, {"x3", "x4"}, {"x5", "x6"}, {"x6", "x7"}, {"x7", "x8"}} {
		_, err := g.AddFactorNode("a"+e[0][1:]+e[1][1:], randFunc(t, rng, []string{e[0], e[1]}, dom), []string{e[0], e[1]}, nil)
		require.NoError(t, err)
	}
	// First cut: pairwise factor over (x1,x4), local at x4, remote at x1.
	_, err := g.AddFactorNode("a14^4", randFunc(t, rng, []string{"x1", "x4"}, dom), []string{"x4"}, []string{"x1"})
	require.NoError(t, err)
	// Second cut: ternary factor over (x4,x5,x8), locals x4 and x5, remote x8.
	_, err = g.AddFactorNode("a458^{45}", randFunc(t, rng, []string{"x4", "x5", "x8"}, dom), []string{"x4", "x5"}, []string{"x8"})
	require.NoError(t, err)

	got := mapByMessagePassing(t, g, vars)
	requireGlobalOptimum(t, g, got)
}

// TestExtendedMessage_ForwardCarriesSplitVariable: the very first
// message out of a split factor must keep its remote variable alive in
// the message domain so downstream nodes can resolve the cycle.
func TestExtendedMessage_ForwardCarriesSplitVariable(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	dom := []tabfunc.Value{0, 1}

	g := factorgraph.New(semiring.MaxSum())
	for _, name := range []string{"x1", "x2", "x6"} {
		_, err := g.AddVariable(name, dom)
		require.NoError(t, err)
	}
	_, err := g.AddFactorNode("a12", randFunc(t, rng, []string{"x1", "x2"}, dom), []string{"x1", "x2"}, nil)
	require.NoError(t, err)
	_, err = g.AddFactorNode("a16^1", randFunc(t, rng, []string{"x1", "x6"}, dom), []string{"x1"}, []string{"x6"})
	require.NoError(t, err)
	_, err = g.AddFactorNode("a16^6", randFunc(t, rng, []string{"x1", "x6"}, dom), []string{"x6"}, []string{"x1"})
	require.NoError(t, err)

	m, err := g.ExtendedMessage("a16^1", "x1")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"x1", "x6"}, m.Func.Vars())

	// Both endpoints of the split are tracked, each across all its edges.
	names := make(map[string]*factorgraph.VariableInfo, len(m.Infos))
	for _, vi := range m.Infos {
		names[vi.Name] = vi
	}
	require.Contains(t, names, "x6")
	require.Equal(t, 1, names["x6"].VisitCount)
	require.Equal(t, 2, names["x6"].NeighbourCount) // local a16^6 + remote a16^1
	require.Contains(t, names, "x1")
}
