// Package factorgraph: core types, options, and sentinel errors.
package factorgraph

import (
	"errors"

	"github.com/katalvlaran/gdl/tabfunc"
)

// Sentinel errors for factor-graph construction and message passing.
var (
	// ErrUnknownNode indicates an operation referenced a node name the
	// graph does not contain.
	ErrUnknownNode = errors.New("factorgraph: unknown node")

	// ErrDuplicateNode indicates a node was added under a name already in use.
	ErrDuplicateNode = errors.New("factorgraph: duplicate node name")

	// ErrNotBipartite indicates an edge between two variables or two
	// factors; edges always pair one variable with one factor.
	ErrNotBipartite = errors.New("factorgraph: edge must pair a variable with a factor")

	// ErrNotNeighbours indicates a message was requested between two nodes
	// with no edge — a construction/usage bug, surfaced immediately.
	ErrNotNeighbours = errors.New("factorgraph: nodes are not neighbours")

	// ErrNotVariable indicates a variable-only query named a factor node.
	ErrNotVariable = errors.New("factorgraph: node is not a variable")

	// ErrNoMessages indicates an assignment query before any message
	// reached the node — there is no information to answer from yet.
	ErrNoMessages = errors.New("factorgraph: no messages received yet")

	// ErrEmptyGraph indicates a whole-graph operation on a graph with no factors.
	ErrEmptyGraph = errors.New("factorgraph: graph has no factors")
)

// DefaultEpsilon is the entrywise tolerance under which a recomputed
// message is considered unchanged and its resend suppressed.
const DefaultEpsilon = 1e-4

// DefaultLoopyRounds is the number of asynchronous rounds RunLoopy
// performs when the caller does not override it.
const DefaultLoopyRounds = 5

// VariableInfo tracks, for the cycle-splitting extension, how much of
// one variable's information has propagated: NeighbourCount is the
// variable's total incident edges (local + remote), VisitCount the
// edges' worth of information already absorbed into the running
// accumulation. Once VisitCount reaches NeighbourCount the variable's
// contribution is fully absorbed and stops propagating. Infos are
// created fresh per message computation and never persisted beyond one
// Message.
type VariableInfo struct {
	// Name is the tracked variable's name.
	Name string

	// Contained reports whether the accumulated function still carries
	// the variable itself (as opposed to counting information about it).
	Contained bool

	// NeighbourCount is the variable's total incident edge count.
	NeighbourCount int

	// VisitCount is how many edges' worth of information has been absorbed.
	VisitCount int
}

// exhausted reports whether the variable's information is fully absorbed.
func (vi *VariableInfo) exhausted() bool { return vi.VisitCount >= vi.NeighbourCount }

// clone returns an independent copy.
func (vi *VariableInfo) clone() *VariableInfo {
	c := *vi

	return &c
}

// Message is an immutable record passed along one directed edge,
// uniquely identified by (Source, Dest, Seq). Infos and Assignments
// are populated only by the cycle-splitting extension.
type Message struct {
	// Source and Dest are node names.
	Source string
	Dest   string

	// Func is the message's tabulated function.
	Func *tabfunc.Func

	// Seq is the graph-wide send sequence number, stamped on delivery.
	Seq uint64

	// Infos carries per-variable propagation metadata, in deterministic
	// accumulation order.
	Infos []*VariableInfo

	// Assignments carries variable values fixed by backward MAP passes.
	Assignments tabfunc.Assignment
}

// LoopyOptions configures the residual loopy schedule (RunLoopy).
//
// Fields:
//   - Rounds  — number of asynchronous full sweeps (default DefaultLoopyRounds).
//   - Epsilon — per-edge suppression tolerance (default DefaultEpsilon).
//   - Shuffle — visit nodes in seeded-random order instead of insertion order.
//   - Seed    — RNG seed used when Shuffle is set; fixed for reproducibility.
type LoopyOptions struct {
	Rounds  int
	Epsilon float64
	Shuffle bool
	Seed    int64
}

// DefaultLoopyOptions returns the canonical residual-schedule settings:
// DefaultLoopyRounds sweeps, DefaultEpsilon suppression, insertion order.
func DefaultLoopyOptions() LoopyOptions {
	return LoopyOptions{
		Rounds:  DefaultLoopyRounds,
		Epsilon: DefaultEpsilon,
	}
}
