package factorgraph

import (
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/gdl/semiring"
	"github.com/katalvlaran/gdl/tabfunc"
)

// Graph owns all nodes of one factor graph, the ring every message
// computation uses, and the monotonically increasing send counter that
// stamps messages. Nodes never outlive the graph.
//
// Construction (AddVariable / AddFactor / Connect) is not concurrency
// safe; message passing may be parallelized per round because message
// computation only reads node state and delivery touches exactly one
// received-message entry — the counter is atomic for that reason.
type Graph struct {
	ring    semiring.Ring
	vars    map[string]*VariableNode
	factors map[string]*FactorNode
	nodes   map[string]Node // union lookup over both maps
	order   []Node          // insertion order, drives deterministic scans
	counter atomic.Uint64
}

// New creates an empty factor graph over the given ring.
func New(ring semiring.Ring) *Graph {
	return &Graph{
		ring:    ring,
		vars:    make(map[string]*VariableNode),
		factors: make(map[string]*FactorNode),
		nodes:   make(map[string]Node),
	}
}

// Ring returns the graph's semiring.
func (g *Graph) Ring() semiring.Ring { return g.ring }

// Sends returns how many messages have been delivered so far.
func (g *Graph) Sends() uint64 { return g.counter.Load() }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.order))
	copy(out, g.order)

	return out
}

// Variable returns the named variable node.
func (g *Graph) Variable(name string) (*VariableNode, bool) {
	vn, ok := g.vars[name]

	return vn, ok
}

// Factor returns the named factor node.
func (g *Graph) Factor(name string) (*FactorNode, bool) {
	fn, ok := g.factors[name]

	return fn, ok
}

// AddVariable creates a variable node over the given ordered domain.
// Its own function is the ring's multiplicative identity, so it only
// relays and combines incoming information.
func (g *Graph) AddVariable(name string, domain []tabfunc.Value) (*VariableNode, error) {
	if _, dup := g.nodes[name]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	unity, err := tabfunc.Unity(name, domain, g.ring)
	if err != nil {
		return nil, err
	}
	vn := &VariableNode{node: newNode(name, g, unity)}
	vn.domain = make([]tabfunc.Value, len(domain))
	copy(vn.domain, domain)

	g.vars[name] = vn
	g.nodes[name] = vn
	g.order = append(g.order, vn)

	return vn, nil
}

// AddFactor creates a factor node holding the user-supplied function.
// Edges are wired separately with Connect / ConnectRemote.
func (g *Graph) AddFactor(name string, f *tabfunc.Func) (*FactorNode, error) {
	if f == nil {
		return nil, tabfunc.ErrNilFunc
	}
	if _, dup := g.nodes[name]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	fn := &FactorNode{node: newNode(name, g, f)}

	g.factors[name] = fn
	g.nodes[name] = fn
	g.order = append(g.order, fn)

	return fn, nil
}

// AddFactorNode creates a factor node and wires it to the given local
// and remote variable neighbours in one call.
func (g *Graph) AddFactorNode(name string, f *tabfunc.Func, neighbours, remotes []string) (*FactorNode, error) {
	fn, err := g.AddFactor(name, f)
	if err != nil {
		return nil, err
	}
	var v string
	for _, v = range neighbours {
		if err = g.Connect(name, v); err != nil {
			return nil, err
		}
	}
	for _, v = range remotes {
		if err = g.ConnectRemote(name, v); err != nil {
			return nil, err
		}
	}

	return fn, nil
}

// Connect records a local edge between a variable and a factor, in
// either argument order. The factor's function must carry the variable
// with the exact domain the variable node declares — mismatches fail
// fast here instead of deep inside a later Join.
func (g *Graph) Connect(a, b string) error {
	vn, fn, err := g.pair(a, b)
	if err != nil {
		return err
	}
	if err = g.checkFactorDomain(vn, fn); err != nil {
		return err
	}
	vn.addLocal(fn.name)
	fn.addLocal(vn.name)

	return nil
}

// ConnectRemote records a remote edge — the cycle-splitting half of a
// split factor. Remote neighbours never exchange messages directly;
// they only extend the propagation bookkeeping (see VariableInfo).
func (g *Graph) ConnectRemote(a, b string) error {
	vn, fn, err := g.pair(a, b)
	if err != nil {
		return err
	}
	if err = g.checkFactorDomain(vn, fn); err != nil {
		return err
	}
	vn.addRemote(fn.name)
	fn.addRemote(vn.name)

	return nil
}

// pair resolves (a, b) into the (variable, factor) endpoints of an
// edge, whichever order they were given in.
func (g *Graph) pair(a, b string) (*VariableNode, *FactorNode, error) {
	if vn, ok := g.vars[a]; ok {
		fn, ok := g.factors[b]
		if !ok {
			if _, isVar := g.vars[b]; isVar {
				return nil, nil, fmt.Errorf("%w: %q and %q are both variables", ErrNotBipartite, a, b)
			}

			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownNode, b)
		}

		return vn, fn, nil
	}
	if fn, ok := g.factors[a]; ok {
		vn, ok := g.vars[b]
		if !ok {
			if _, isFactor := g.factors[b]; isFactor {
				return nil, nil, fmt.Errorf("%w: %q and %q are both factors", ErrNotBipartite, a, b)
			}

			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownNode, b)
		}

		return vn, fn, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownNode, a)
}

// checkFactorDomain verifies the factor's function depends on the
// variable and declares the identical ordered domain.
func (g *Graph) checkFactorDomain(vn *VariableNode, fn *FactorNode) error {
	dom, ok := fn.own.Domain(vn.name)
	if !ok {
		return fmt.Errorf("%w: factor %q does not depend on %q", tabfunc.ErrUnknownVariable, fn.name, vn.name)
	}
	if len(dom) != len(vn.domain) {
		return fmt.Errorf("%w: %q", tabfunc.ErrDomainMismatch, vn.name)
	}
	for i := range dom {
		if dom[i] != vn.domain[i] {
			return fmt.Errorf("%w: %q", tabfunc.ErrDomainMismatch, vn.name)
		}
	}

	return nil
}

// Reset clears every node's received messages and fixed assignments
// and rewinds the send counter, leaving the topology intact.
func (g *Graph) Reset() {
	for _, n := range g.order {
		n.base().reset()
	}
	for _, vn := range g.vars {
		vn.mapValue = nil
	}
	g.counter.Store(0)
}

// Factorize joins every factor's function into one table over all
// variables — the brute-force reference the message-passing results
// can be checked against. Cost is the product of all domain sizes;
// use on small graphs only.
func (g *Graph) Factorize() (*tabfunc.Func, error) {
	var (
		joint *tabfunc.Func
		err   error
	)
	for _, n := range g.order {
		fn, isFactor := g.factors[n.Name()]
		if !isFactor {
			continue
		}
		if joint == nil {
			joint = fn.own

			continue
		}
		if joint, err = tabfunc.Join(joint, fn.own, g.ring); err != nil {
			return nil, err
		}
	}
	if joint == nil {
		return nil, ErrEmptyGraph
	}

	return joint, nil
}

// Marginal combines everything the node currently knows: its own
// function joined with every received message, marginalized down to
// the variable itself for a variable node (a factor node gets the
// joined table unreduced).
func (g *Graph) Marginal(name string) (*tabfunc.Func, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	f := n.OwnFunc()
	var err error
	for _, m := range n.base().receivedInOrder() {
		if f, err = tabfunc.Join(f, m.Func, g.ring); err != nil {
			return nil, err
		}
	}
	if _, isVar := g.vars[name]; isVar {
		if f, err = tabfunc.Marginalize(f, g.ring, []string{name}); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// MAPAssignment returns the value the named variable takes in the MAP
// solution: a value fixed by a backward pass if one reached this node,
// else the brute-force argmax of the node's current marginal.
// ErrNoMessages when no information has arrived at all.
func (g *Graph) MAPAssignment(name string) (tabfunc.Value, error) {
	vn, ok := g.vars[name]
	if !ok {
		if _, isFactor := g.factors[name]; isFactor {
			return nil, fmt.Errorf("%w: %q", ErrNotVariable, name)
		}

		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	if vn.mapValue != nil {
		return vn.mapValue, nil
	}

	msgs := vn.receivedInOrder()
	for _, m := range msgs {
		if val, ok := m.Assignments[name]; ok {
			return val, nil
		}
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMessages, name)
	}

	// Fall back to the argmax of the current belief, with every fixed
	// assignment carried by the messages eliminated first.
	f := vn.OwnFunc()
	ass := make(tabfunc.Assignment)
	var err error
	for _, m := range msgs {
		if f, err = tabfunc.Join(f, m.Func, g.ring); err != nil {
			return nil, err
		}
		for v, val := range m.Assignments {
			ass[v] = val
		}
	}
	if f, err = tabfunc.Eliminate(f, g.ring, ass, false); err != nil {
		return nil, err
	}
	if f, err = tabfunc.Marginalize(f, g.ring, []string{name}); err != nil {
		return nil, err
	}
	best, _ := f.ArgMax()

	return best[name], nil
}
