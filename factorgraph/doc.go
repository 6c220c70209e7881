// Package factorgraph implements semiring message passing on factor
// graphs: the Generalized Distributive Law (GDL) schedule that is
// exact on trees, a cycle-splitting extension that stays exact on
// loopy topologies by routing one factor's edges across a cut, and a
// residual loopy fallback for approximate inference.
//
// 🚀 What is a factor graph?
//
//	A bipartite graph of Variable nodes and Factor nodes; an edge
//	means the factor's function depends on that variable.  Message
//	passing computes, for every variable, the semiring-combination of
//	all incident factors — marginals under sum-product, MAP values
//	under max-sum — without ever materializing the full joint table.
//
// ✨ Key features:
//   - Two node variants behind one Node contract — no runtime type tests
//   - Per-node send-readiness scheduling: a node may send to a
//     neighbour once it has heard from every other neighbour
//   - Remote neighbours: split a cycle-closing factor across a cut and
//     keep message passing exact, including MAP backtracking
//   - Residual loopy mode: fixed rounds, per-edge update suppression
//   - Deterministic: neighbour sets and received-message maps are
//     insertion-ordered, never raw Go maps
//
// ⚙️ Usage:
//
//	import (
//	    "github.com/katalvlaran/gdl/factorgraph"
//	    "github.com/katalvlaran/gdl/semiring"
//	)
//
//	g := factorgraph.New(semiring.SumProduct())
//	g.AddVariable("x1", dom)
//	g.AddVariable("x2", dom)
//	g.AddFactorNode("a12", f12, []string{"x1", "x2"}, nil)
//	g.RunTree()
//	m, _ := g.Marginal("x1")
//
// Scheduling modes:
//
//   - RunTree      — exact on acyclic graphs; two messages per edge.
//   - RunExtended  — exact on graphs whose cycles are broken with
//     ConnectRemote; tracks per-variable propagation counts and
//     recovers a globally consistent MAP assignment on the backward
//     pass.
//   - RunLoopy     — approximate; fixed rounds, no exactness guarantee.
//
// Errors are strict package-prefixed sentinels declared in types.go.
package factorgraph
