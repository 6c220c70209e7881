// Package factorgraph: message construction and delivery.
//
// Two construction rules live here. Message implements the plain GDL
// rule that is exact on trees; ExtendedMessage adds the bookkeeping
// layer that keeps the schedule exact when factors have been split
// across a cut with ConnectRemote.
package factorgraph

import (
	"fmt"

	"github.com/katalvlaran/gdl/tabfunc"
)

// infoSet accumulates VariableInfo entries in deterministic first-seen
// order; plain map iteration never decides a message's domain.
type infoSet struct {
	order  []string
	byName map[string]*VariableInfo
}

func newInfoSet() *infoSet {
	return &infoSet{byName: make(map[string]*VariableInfo)}
}

func (s *infoSet) get(name string) (*VariableInfo, bool) {
	vi, ok := s.byName[name]

	return vi, ok
}

func (s *infoSet) put(vi *VariableInfo) {
	s.order = append(s.order, vi.Name)
	s.byName[vi.Name] = vi
}

// infos snapshots the set into first-seen order for a Message record.
func (s *infoSet) infos() []*VariableInfo {
	out := make([]*VariableInfo, len(s.order))
	for i, name := range s.order {
		out[i] = s.byName[name]
	}

	return out
}

// endpoints resolves both node names and verifies a local edge exists.
func (g *Graph) endpoints(source, target string) (Node, Node, error) {
	s, ok := g.nodes[source]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownNode, source)
	}
	t, ok := g.nodes[target]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownNode, target)
	}
	if !s.base().locals.Contains(target) {
		return nil, nil, fmt.Errorf("%w: %q → %q", ErrNotNeighbours, source, target)
	}

	return s, t, nil
}

// Message computes the plain GDL message from source to target: the
// source's own function joined with every received message except the
// target's own, marginalized down to the single variable the recipient
// needs. On an acyclic graph this never double-counts information.
//
// The sequence number is stamped on delivery (Send), not here.
func (g *Graph) Message(source, target string) (*Message, error) {
	s, _, err := g.endpoints(source, target)
	if err != nil {
		return nil, err
	}

	f := s.OwnFunc()
	for _, m := range s.base().receivedInOrder() {
		if m.Source == target {
			continue
		}
		if f, err = tabfunc.Join(f, m.Func, g.ring); err != nil {
			return nil, err
		}
	}
	if f, err = tabfunc.Marginalize(f, g.ring, []string{s.anchorVar(target)}); err != nil {
		return nil, err
	}

	return &Message{Source: source, Dest: target, Func: f}, nil
}

// ExtendedMessage computes the cycle-splitting message from source to
// target.
//
// Algorithm outline:
//  1. Accumulate VariableInfos from every received message (the
//     target's included — its counts still matter) and seed the
//     variant-specific entries: a variable with remote neighbours
//     tracks itself; a factor consumes one edge's worth of information
//     for every adjacent variable that has remote neighbours.
//  2. Derive the message domain. Forward pass: the anchor variable
//     plus every tracked variable whose information is not yet fully
//     absorbed. Backward pass (a message from target is already
//     stored, i.e. the cut has closed): reuse exactly the stored
//     message's tracked variables — both directions of a split edge
//     must agree on what they jointly resolve.
//  3. Join own function with all received messages except the
//     target's; eliminate every assignment fixed so far.
//  4. Backward pass, and only when the stored message tracks split
//     variables: join in the stored message, eliminate the fixed
//     assignments, brute-force the argmax of the remainder and fix
//     every message-domain variable to its argmax value. This is how
//     split factors recover a globally consistent MAP assignment. A
//     backward leg with no tracked variables carries no cut to
//     resolve, so it follows the plain rule — on an unsplit graph the
//     extended schedule must reproduce RunTree exactly.
//  5. Marginalize to the message domain and tag the result with the
//     accumulated infos and assignments.
func (g *Graph) ExtendedMessage(source, target string) (*Message, error) {
	s, _, err := g.endpoints(source, target)
	if err != nil {
		return nil, err
	}
	stored, backwards := s.base().receivedFrom(target)

	// 1) Propagation bookkeeping.
	set := newInfoSet()
	for _, m := range s.base().receivedInOrder() {
		for _, vi := range m.Infos {
			if cur, ok := set.get(vi.Name); ok {
				cur.VisitCount += vi.VisitCount
				cur.Contained = cur.Contained || vi.Contained

				continue
			}
			set.put(vi.clone())
		}
	}
	s.seedInfos(set)

	// 2) Message domain.
	rd := messageDomain(s, target, set, stored)

	// 3) Combine and apply fixed assignments.
	f := s.OwnFunc()
	for _, m := range s.base().receivedInOrder() {
		if m.Source == target {
			continue
		}
		if f, err = tabfunc.Join(f, m.Func, g.ring); err != nil {
			return nil, err
		}
	}
	ass := s.base().fixed
	for _, m := range s.base().receivedInOrder() {
		for v, val := range m.Assignments {
			ass[v] = val
		}
	}
	if f, err = tabfunc.Eliminate(f, g.ring, ass, false); err != nil {
		return nil, err
	}

	// 4) Backward MAP resolution, split-variable bookkeeping only.
	if backwards && len(stored.Infos) > 0 {
		fTotal, err := tabfunc.Join(f, stored.Func, g.ring)
		if err != nil {
			return nil, err
		}
		if fTotal, err = tabfunc.Eliminate(fTotal, g.ring, ass, false); err != nil {
			return nil, err
		}
		newAss, _ := fTotal.ArgMax()

		newFix := make(tabfunc.Assignment, len(rd))
		var name string
		for _, name = range rd {
			if val, ok := newAss[name]; ok {
				newFix[name] = val
				ass[name] = val
			}
		}
		if f, err = tabfunc.Eliminate(f, g.ring, newFix, false); err != nil {
			return nil, err
		}
	}
	s.noteAssignments(ass)

	// 5) Reduce to the message domain.
	if f, err = tabfunc.Marginalize(f, g.ring, rd); err != nil {
		return nil, err
	}

	out := &Message{Source: source, Dest: target, Func: f, Infos: set.infos()}
	out.Assignments = make(tabfunc.Assignment, len(ass))
	for v, val := range ass {
		out.Assignments[v] = val
	}

	return out, nil
}

// messageDomain derives the set of variables a message from s to
// target must resolve; see ExtendedMessage step 2.
func messageDomain(s Node, target string, set *infoSet, stored *Message) []string {
	rd := []string{s.anchorVar(target)}
	seen := map[string]struct{}{rd[0]: {}}

	if stored == nil { // forward pass
		for _, name := range set.order {
			if set.byName[name].exhausted() {
				continue // fully absorbed: stop propagating this variable
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			rd = append(rd, name)
		}

		return rd
	}

	// Backward pass: mirror the stored message's tracked variables.
	for _, vi := range stored.Infos {
		if _, dup := seen[vi.Name]; dup {
			continue
		}
		seen[vi.Name] = struct{}{}
		rd = append(rd, vi.Name)
	}

	return rd
}

// Send stamps the message with the next sequence number and delivers
// it: the recipient's received map keeps only the latest message per
// sender, so delivery replaces any older one from the same source.
func (g *Graph) Send(m *Message) error {
	_, t, err := g.endpoints(m.Source, m.Dest)
	if err != nil {
		return err
	}
	m.Seq = g.counter.Add(1)
	t.base().received.Put(m.Source, m)

	return nil
}

// SendIfUpdate delivers the message unless the previous message on the
// same edge is entrywise within eps of it — the residual-schedule
// suppression that lets loopy propagation quiesce. Reports whether the
// message was actually sent.
func (g *Graph) SendIfUpdate(m *Message, eps float64) (bool, error) {
	_, t, err := g.endpoints(m.Source, m.Dest)
	if err != nil {
		return false, err
	}
	if prev, ok := t.base().receivedFrom(m.Source); ok && prev.Func.AlmostEqual(m.Func, eps) {
		return false, nil
	}
	m.Seq = g.counter.Add(1)
	t.base().received.Put(m.Source, m)

	return true, nil
}
