// Package gridmrf defines core types, options, and sentinel errors for
// the gridmrf subpackage of github.com/katalvlaran/gdl.
package gridmrf

import (
	"errors"
)

// Sentinel errors for gridmrf operations.
var (
	// ErrEmptyGrid indicates the grid has no columns or no rows.
	ErrEmptyGrid = errors.New("gridmrf: grid must have at least one column and one row")
	// ErrBadLabelCount indicates fewer than two labels per cell.
	ErrBadLabelCount = errors.New("gridmrf: label count must be at least 2")
	// ErrNilScore indicates a missing unary or pairwise score callback.
	ErrNilScore = errors.New("gridmrf: unary and pairwise score callbacks must be non-nil")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 links each cell to its E and S forward neighbours.
	Conn4 Connectivity = iota
	// Conn8 additionally links the SE and SW diagonals.
	Conn8
)

// UnaryScore rates assigning the given label to cell (x, y).
// Higher is better.
type UnaryScore func(x, y, label int) float64

// PairwiseScore rates a pair of labels on neighbouring cells.
// Higher is better; symmetric callbacks are typical but not required —
// the first argument always belongs to the lexicographically earlier
// cell of the pair.
type PairwiseScore func(a, b int) float64

// Options contains tunable parameters for building the field.
type Options struct {
	// Labels is the number of labels each cell can take (0..Labels-1).
	Labels int
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// Unary rates a single cell's label.
	Unary UnaryScore
	// Pairwise rates the labels of a neighbouring pair.
	Pairwise PairwiseScore
}

// DefaultOptions returns an Options with Labels=2 and Conn=Conn4.
// The score callbacks have no sensible default and must be set.
func DefaultOptions() Options {
	return Options{
		Labels: 2,
		Conn:   Conn4,
	}
}
