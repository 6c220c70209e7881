package factorgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gdl/factorgraph"
	"github.com/katalvlaran/gdl/semiring"
	"github.com/katalvlaran/gdl/tabfunc"
)

// boolDom is the two-value domain shared by the small test networks.
func boolDom() []tabfunc.Value { return []tabfunc.Value{true, false} }

// pairTable builds a factor over two bool variables from four values
// in row-major order (first variable slowest).
func pairTable(t *testing.T, a, b string, vals []float64) *tabfunc.Func {
	t.Helper()
	f, err := tabfunc.FromTable(
		[]string{a, b},
		map[string][]tabfunc.Value{a: boolDom(), b: boolDom()},
		vals,
	)
	require.NoError(t, err)

	return f
}

func TestGraph_AddAndLookup(t *testing.T) {
	g := factorgraph.New(semiring.SumProduct())

	vn, err := g.AddVariable("x", boolDom())
	require.NoError(t, err)
	require.Equal(t, "x", vn.Name())
	require.Equal(t, boolDom(), vn.Domain())

	_, err = g.AddVariable("x", boolDom())
	require.ErrorIs(t, err, factorgraph.ErrDuplicateNode)

	_, err = g.AddVariable("empty", nil)
	require.ErrorIs(t, err, tabfunc.ErrEmptyDomain)

	_, err = g.AddFactor("f", nil)
	require.ErrorIs(t, err, tabfunc.ErrNilFunc)

	got, ok := g.Variable("x")
	require.True(t, ok)
	require.Same(t, vn, got)
	_, ok = g.Factor("x")
	require.False(t, ok)
}

func TestGraph_ConnectValidation(t *testing.T) {
	g := factorgraph.New(semiring.SumProduct())
	_, err := g.AddVariable("x", boolDom())
	require.NoError(t, err)
	_, err = g.AddVariable("y", boolDom())
	require.NoError(t, err)
	_, err = g.AddFactor("fxy", pairTable(t, "x", "y", []float64{1, 2, 3, 4}))
	require.NoError(t, err)

	// Happy path, both argument orders.
	require.NoError(t, g.Connect("x", "fxy"))
	require.NoError(t, g.Connect("fxy", "y"))

	// Unknown and non-bipartite endpoints.
	require.ErrorIs(t, g.Connect("x", "nope"), factorgraph.ErrUnknownNode)
	require.ErrorIs(t, g.Connect("nope", "x"), factorgraph.ErrUnknownNode)
	require.ErrorIs(t, g.Connect("x", "y"), factorgraph.ErrNotBipartite)

	// The factor must depend on the variable...
	_, err = g.AddVariable("z", boolDom())
	require.NoError(t, err)
	require.ErrorIs(t, g.Connect("z", "fxy"), tabfunc.ErrUnknownVariable)

	// ...with the exact domain the variable declares.
	_, err = g.AddVariable("w", []tabfunc.Value{1, 2, 3})
	require.NoError(t, err)
	fw := pairTable(t, "w", "x", []float64{1, 2, 3, 4})
	_, err = g.AddFactor("fwx", fw)
	require.NoError(t, err)
	require.ErrorIs(t, g.Connect("w", "fwx"), tabfunc.ErrDomainMismatch)

	// Duplicate Connect calls are absorbed silently.
	require.NoError(t, g.Connect("x", "fxy"))
	fn, _ := g.Factor("fxy")
	require.Equal(t, []string{"x", "y"}, fn.Neighbours())
}

func TestGraph_AddFactorNode(t *testing.T) {
	g := factorgraph.New(semiring.MaxSum())
	_, err := g.AddVariable("x", boolDom())
	require.NoError(t, err)
	_, err = g.AddVariable("y", boolDom())
	require.NoError(t, err)

	fn, err := g.AddFactorNode("fxy", pairTable(t, "x", "y", []float64{0, 1, 2, 3}), []string{"x"}, []string{"y"})
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, fn.Neighbours())
	require.Equal(t, []string{"y"}, fn.RemoteNeighbours())
	require.True(t, fn.IsLeaf())

	vy, _ := g.Variable("y")
	require.Equal(t, []string{"fxy"}, vy.RemoteNeighbours())
	require.Empty(t, vy.Neighbours())
}

func TestGraph_MessageErrors(t *testing.T) {
	g := factorgraph.New(semiring.SumProduct())
	_, err := g.AddVariable("x", boolDom())
	require.NoError(t, err)
	_, err = g.AddVariable("y", boolDom())
	require.NoError(t, err)
	_, err = g.AddFactorNode("fxy", pairTable(t, "x", "y", []float64{1, 1, 1, 1}), []string{"x"}, nil)
	require.NoError(t, err)

	_, err = g.Message("x", "ghost")
	require.ErrorIs(t, err, factorgraph.ErrUnknownNode)

	// y was never connected: no edge, no message.
	_, err = g.Message("y", "fxy")
	require.ErrorIs(t, err, factorgraph.ErrNotNeighbours)
	_, err = g.ExtendedMessage("y", "fxy")
	require.ErrorIs(t, err, factorgraph.ErrNotNeighbours)
}

func TestGraph_QueriesBeforeAnyMessage(t *testing.T) {
	g := factorgraph.New(semiring.MaxSum())
	_, err := g.AddVariable("x", boolDom())
	require.NoError(t, err)
	_, err = g.AddFactorNode("fx", onesOver(t, "x"), []string{"x"}, nil)
	require.NoError(t, err)

	_, err = g.MAPAssignment("x")
	require.ErrorIs(t, err, factorgraph.ErrNoMessages)

	_, err = g.MAPAssignment("fx")
	require.ErrorIs(t, err, factorgraph.ErrNotVariable)

	_, err = g.MAPAssignment("ghost")
	require.ErrorIs(t, err, factorgraph.ErrUnknownNode)

	_, err = g.Marginal("ghost")
	require.ErrorIs(t, err, factorgraph.ErrUnknownNode)
}

// onesOver builds a single-variable all-ones factor over boolDom.
func onesOver(t *testing.T, name string) *tabfunc.Func {
	t.Helper()
	f, err := tabfunc.FromTable(
		[]string{name},
		map[string][]tabfunc.Value{name: boolDom()},
		[]float64{1, 1},
	)
	require.NoError(t, err)

	return f
}

func TestGraph_Factorize(t *testing.T) {
	g := factorgraph.New(semiring.SumProduct())
	_, err := g.AddVariable("x", boolDom())
	require.NoError(t, err)

	_, err = g.Factorize()
	require.ErrorIs(t, err, factorgraph.ErrEmptyGraph)

	_, err = g.AddVariable("y", boolDom())
	require.NoError(t, err)
	_, err = g.AddFactorNode("fxy", pairTable(t, "x", "y", []float64{1, 2, 3, 4}), []string{"x", "y"}, nil)
	require.NoError(t, err)

	joint, err := g.Factorize()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"x", "y"}, joint.Vars())
}

func TestGraph_ResetAndSends(t *testing.T) {
	g := factorgraph.New(semiring.SumProduct())
	_, err := g.AddVariable("x", boolDom())
	require.NoError(t, err)
	_, err = g.AddVariable("y", boolDom())
	require.NoError(t, err)
	_, err = g.AddFactorNode("fxy", pairTable(t, "x", "y", []float64{0.1, 0.2, 0.3, 0.4}), []string{"x", "y"}, nil)
	require.NoError(t, err)

	sent, err := g.RunTree()
	require.NoError(t, err)
	require.Equal(t, 4, sent) // two edges, one message each direction
	require.EqualValues(t, 4, g.Sends())

	g.Reset()
	require.EqualValues(t, 0, g.Sends())

	// After Reset the schedule replays identically.
	sent, err = g.RunTree()
	require.NoError(t, err)
	require.Equal(t, 4, sent)
}
