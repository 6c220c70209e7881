// Package factorgraph: the three driver loops. All drivers are
// single-threaded cooperative polling — they repeatedly scan nodes in
// deterministic order and perform sends sequentially. See the package
// documentation for which driver is exact on which topology.
package factorgraph

import "math/rand"

// RunTree drives the exact GDL schedule: repeatedly scan all nodes for
// a ready target and send the plain message, until no node has one.
// On a connected acyclic graph this terminates after exactly two
// messages per edge (one each direction), at which point every
// variable's Marginal is exact. Returns the number of messages sent.
func (g *Graph) RunTree() (int, error) {
	return g.runReady(g.Message)
}

// RunExtended drives the same readiness schedule with the
// cycle-splitting message rule. On a graph whose cycles were broken
// with ConnectRemote it terminates — each variable's contribution
// flows across each of its incident edges at most once — and under an
// optimizing ring the backward passes leave a globally consistent MAP
// assignment on the variable nodes.
func (g *Graph) RunExtended() (int, error) {
	return g.runReady(g.ExtendedMessage)
}

// runReady polls ReadyTarget over all nodes in insertion order until a
// full sweep performs no send.
func (g *Graph) runReady(compute func(source, target string) (*Message, error)) (int, error) {
	sends := 0
	for {
		progress := false
		for _, n := range g.order {
			t, ok := n.ReadyTarget()
			if !ok {
				continue
			}
			m, err := compute(n.Name(), t.Name())
			if err != nil {
				return sends, err
			}
			if err = g.Send(m); err != nil {
				return sends, err
			}
			sends++
			progress = true
		}
		if !progress {
			return sends, nil
		}
	}
}

// RunLoopy drives the residual loopy schedule: a fixed number of
// asynchronous sweeps in which every node sends the plain message to
// every neighbour, with resends suppressed when the new table is
// entrywise within Epsilon of the last message on that edge. No
// exactness guarantee — this is the fallback for loopy graphs without
// cycle splitting. Returns the number of messages actually delivered.
func (g *Graph) RunLoopy(opts LoopyOptions) (int, error) {
	if opts.Rounds <= 0 {
		opts.Rounds = DefaultLoopyRounds
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = DefaultEpsilon
	}

	nodes := g.Nodes()
	var rng *rand.Rand
	if opts.Shuffle {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	sends := 0
	for round := 0; round < opts.Rounds; round++ {
		if rng != nil {
			rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
		}
		for _, n := range nodes {
			for _, target := range n.Neighbours() {
				m, err := g.Message(n.Name(), target)
				if err != nil {
					return sends, err
				}
				sent, err := g.SendIfUpdate(m, opts.Epsilon)
				if err != nil {
					return sends, err
				}
				if sent {
					sends++
				}
			}
		}
	}

	return sends, nil
}
