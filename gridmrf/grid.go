package gridmrf

import (
	"fmt"

	"github.com/katalvlaran/gdl/factorgraph"
	"github.com/katalvlaran/gdl/semiring"
	"github.com/katalvlaran/gdl/tabfunc"
)

// Grid is a pairwise MRF laid over a Width×Height cell lattice.
// It is immutable once built; Solve only moves messages.
type Grid struct {
	width, height int
	labels        int
	conn          Connectivity
	graph         *factorgraph.Graph
}

// CellName returns the variable name of cell (x, y).
func CellName(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// forwardOffsets lists each cell's forward neighbours, so every pair is
// wired exactly once.
func forwardOffsets(conn Connectivity) [][2]int {
	offs := [][2]int{{1, 0}, {0, 1}}
	if conn == Conn8 {
		offs = append(offs, [2]int{1, 1}, [2]int{-1, 1})
	}

	return offs
}

// Build constructs the field: one variable and one unary factor per
// cell, one pairwise factor per forward neighbour pair. The ring is the
// algebra messages combine under — use an optimizing ring such as
// semiring.MaxSum so that Labels reads an argmax.
//
// Node names follow the cell naming: variable "x,y", unary factor
// "score_x,y", pairwise factor "x1,y1:x2,y2".
func Build(width, height int, ring semiring.Ring, opts Options) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}
	if opts.Labels < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadLabelCount, opts.Labels)
	}
	if opts.Unary == nil || opts.Pairwise == nil {
		return nil, ErrNilScore
	}

	dom := make([]tabfunc.Value, opts.Labels)
	for i := range dom {
		dom[i] = i
	}

	g := factorgraph.New(ring)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			name := CellName(x, y)
			if _, err := g.AddVariable(name, dom); err != nil {
				return nil, err
			}
			unary, err := tabfunc.Tabulate(
				[]string{name},
				map[string][]tabfunc.Value{name: dom},
				func(a tabfunc.Assignment) float64 { return opts.Unary(x, y, a[name].(int)) },
			)
			if err != nil {
				return nil, err
			}
			if _, err = g.AddFactorNode("score_"+name, unary, []string{name}, nil); err != nil {
				return nil, err
			}
		}
	}

	offs := forwardOffsets(opts.Conn)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for _, off := range offs {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || nx >= width || ny >= height {
					continue
				}
				a, b := CellName(x, y), CellName(nx, ny)
				pair, err := tabfunc.Tabulate(
					[]string{a, b},
					map[string][]tabfunc.Value{a: dom, b: dom},
					func(as tabfunc.Assignment) float64 { return opts.Pairwise(as[a].(int), as[b].(int)) },
				)
				if err != nil {
					return nil, err
				}
				if _, err = g.AddFactorNode(a+":"+b, pair, []string{a, b}, nil); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Grid{width: width, height: height, labels: opts.Labels, conn: opts.Conn, graph: g}, nil
}

// Width returns the number of columns.
func (gr *Grid) Width() int { return gr.width }

// Height returns the number of rows.
func (gr *Grid) Height() int { return gr.height }

// Graph exposes the underlying factor graph for custom schedules or
// direct marginal queries.
func (gr *Grid) Graph() *factorgraph.Graph { return gr.graph }

// Solve runs the residual loopy schedule over the whole field and
// returns the number of messages delivered. Repeated calls continue
// from the current message state; call Graph().Reset() to start over.
func (gr *Grid) Solve(opts factorgraph.LoopyOptions) (int, error) {
	return gr.graph.RunLoopy(opts)
}

// Label reads the current best label of cell (x, y) — the argmax of
// its belief given the messages delivered so far.
func (gr *Grid) Label(x, y int) (int, error) {
	v, err := gr.graph.MAPAssignment(CellName(x, y))
	if err != nil {
		return 0, err
	}

	return v.(int), nil
}

// Labels reads the whole labeling, indexed [y][x].
func (gr *Grid) Labels() ([][]int, error) {
	out := make([][]int, gr.height)
	for y := 0; y < gr.height; y++ {
		out[y] = make([]int, gr.width)
		for x := 0; x < gr.width; x++ {
			l, err := gr.Label(x, y)
			if err != nil {
				return nil, err
			}
			out[y][x] = l
		}
	}

	return out, nil
}
