package factorgraph

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/katalvlaran/gdl/tabfunc"
)

// Node is the shared contract of the two vertex variants. The
// unexported hooks keep variant dispatch structural — no code in this
// package ever asks "is this a variable?" via type inspection.
type Node interface {
	// Name returns the node's unique name.
	Name() string

	// OwnFunc returns the node's own function: the semiring's
	// multiplicative identity over the variable's domain for a
	// VariableNode, the user-supplied factor for a FactorNode.
	OwnFunc() *tabfunc.Func

	// Neighbours returns the local neighbour names in insertion order.
	Neighbours() []string

	// RemoteNeighbours returns the remote neighbour names in insertion order.
	RemoteNeighbours() []string

	// IsLeaf reports whether the node has exactly one local neighbour.
	IsLeaf() bool

	// ReceivedMessages returns the last message from every sender, in
	// first-delivery order of the senders.
	ReceivedMessages() []*Message

	// ReadyTarget returns a neighbour this node may send to now: one it
	// has not already sent to, after receiving from every other
	// neighbour. Leaves are immediately ready.
	ReadyTarget() (Node, bool)

	// base exposes the shared state to package internals.
	base() *node

	// anchorVar names the variable a message to target must always keep:
	// the node's own name for a variable, the target for a factor.
	anchorVar(target string) string

	// seedInfos contributes the variant-specific VariableInfo entries of
	// one message computation.
	seedInfos(set *infoSet)

	// noteAssignments lets a variant record values fixed by a backward
	// MAP pass.
	noteAssignments(ass tabfunc.Assignment)
}

// node holds the state both variants share. Neighbour sets are mutated
// only during graph construction; received is mutated only by message
// delivery.
type node struct {
	name     string
	g        *Graph
	own      *tabfunc.Func
	locals   *linkedhashset.Set // local neighbour names
	remotes  *linkedhashset.Set // remote neighbour names (cycle splitting)
	received *linkedhashmap.Map // sender name → last *Message
	fixed    tabfunc.Assignment // values fixed by backward MAP passes
}

func newNode(name string, g *Graph, own *tabfunc.Func) node {
	return node{
		name:     name,
		g:        g,
		own:      own,
		locals:   linkedhashset.New(),
		remotes:  linkedhashset.New(),
		received: linkedhashmap.New(),
		fixed:    make(tabfunc.Assignment),
	}
}

func (n *node) Name() string               { return n.name }
func (n *node) OwnFunc() *tabfunc.Func     { return n.own }
func (n *node) IsLeaf() bool               { return n.locals.Size() == 1 }
func (n *node) Neighbours() []string       { return setNames(n.locals) }
func (n *node) RemoteNeighbours() []string { return setNames(n.remotes) }
func (n *node) base() *node                { return n }

// degree is the node's total incident edge count, local plus remote.
func (n *node) degree() int { return n.locals.Size() + n.remotes.Size() }

// hasReceivedFrom reports whether a message from sender was delivered.
func (n *node) hasReceivedFrom(sender string) bool {
	_, ok := n.received.Get(sender)

	return ok
}

// receivedFrom returns the last message delivered from sender.
func (n *node) receivedFrom(sender string) (*Message, bool) {
	v, ok := n.received.Get(sender)
	if !ok {
		return nil, false
	}

	return v.(*Message), true
}

// ReceivedMessages returns the last message from every sender, in
// first-delivery order of the senders.
func (n *node) ReceivedMessages() []*Message { return n.receivedInOrder() }

// receivedInOrder returns all delivered messages in first-delivery
// order of their senders.
func (n *node) receivedInOrder() []*Message {
	vals := n.received.Values()
	out := make([]*Message, len(vals))
	for i, v := range vals {
		out[i] = v.(*Message)
	}

	return out
}

// ReadyTarget implements the classic GDL send precondition: pick the
// first local neighbour T (insertion order) such that this node has
// not already sent to T and has received from every neighbour other
// than T. Returns false when no neighbour qualifies — on a tree that
// means this node is done.
func (n *node) ReadyTarget() (Node, bool) {
	names := n.Neighbours()
	var target, other string
	for _, target = range names {
		// Already sent? The reverse record lives in the target's received map.
		if n.g.nodes[target].base().hasReceivedFrom(n.name) {
			continue
		}
		ready := true
		for _, other = range names {
			if other != target && !n.hasReceivedFrom(other) {
				ready = false

				break
			}
		}
		if ready {
			return n.g.nodes[target], true
		}
	}

	return nil, false
}

// reset drops all delivered messages and fixed assignments.
func (n *node) reset() {
	n.received = linkedhashmap.New()
	n.fixed = make(tabfunc.Assignment)
}

// addLocal / addRemote record an edge endpoint; the ordered sets
// silently absorb duplicate Connect calls.
func (n *node) addLocal(name string)  { n.locals.Add(name) }
func (n *node) addRemote(name string) { n.remotes.Add(name) }

// setNames snapshots an ordered set of names into a string slice.
func setNames(s *linkedhashset.Set) []string {
	vals := s.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}

	return out
}

// VariableNode represents one finite-domain variable. Its own function
// is the ring's multiplicative identity over its domain, so joining it
// in never distorts incoming information.
type VariableNode struct {
	node
	domain   []tabfunc.Value
	mapValue tabfunc.Value // fixed by a backward MAP pass; nil until known
}

// Domain returns the variable's ordered domain (a copy).
func (v *VariableNode) Domain() []tabfunc.Value {
	out := make([]tabfunc.Value, len(v.domain))
	copy(out, v.domain)

	return out
}

// anchorVar: a variable's message always keeps the variable itself.
func (v *VariableNode) anchorVar(string) string { return v.name }

// seedInfos: a variable with remote neighbours marks itself as
// contained, tracked across all of its incident edges.
func (v *VariableNode) seedInfos(set *infoSet) {
	if v.remotes.Size() == 0 {
		return
	}
	if cur, ok := set.get(v.name); ok {
		cur.Contained = true

		return
	}
	set.put(&VariableInfo{Name: v.name, Contained: true, NeighbourCount: v.degree()})
}

// noteAssignments records this variable's own value once a backward
// pass fixes it; final-assignment queries reuse it.
func (v *VariableNode) noteAssignments(ass tabfunc.Assignment) {
	if val, ok := ass[v.name]; ok {
		v.mapValue = val
	}
}

// FactorNode represents one user-supplied factor over the variables it
// is connected to.
type FactorNode struct {
	node
}

// anchorVar: a factor's message always keeps the recipient variable.
func (f *FactorNode) anchorVar(target string) string { return target }

// seedInfos: sending through a factor consumes one edge's worth of
// information for every adjacent variable that itself has remote
// neighbours.
func (f *FactorNode) seedInfos(set *infoSet) {
	names := append(f.RemoteNeighbours(), f.Neighbours()...)
	var name string
	for _, name = range names {
		nb := f.g.nodes[name].base()
		if nb.remotes.Size() == 0 {
			continue
		}
		if cur, ok := set.get(name); ok {
			cur.VisitCount++

			continue
		}
		set.put(&VariableInfo{Name: name, NeighbourCount: nb.degree(), VisitCount: 1})
	}
}

// noteAssignments: factors do not hold final values.
func (f *FactorNode) noteAssignments(tabfunc.Assignment) {}
