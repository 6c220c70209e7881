// Package gridmrf lays a pairwise Markov random field over a 2D pixel
// grid and labels it by loopy message passing.
//
// What:
//
//   - Grid wraps a factorgraph.Graph with one variable per cell, one
//     unary score factor per cell and one pairwise score factor per
//     neighbouring cell pair (Conn4 or Conn8).
//   - Solve runs the residual loopy schedule for a bounded number of
//     sweeps; Labels reads back the per-cell argmax labeling.
//
// Why:
//
//   - Stereo depth: label = disparity, unary = colour match between the
//     shifted views, pairwise = smoothness penalty.
//   - Image denoising / segmentation: label = class, unary = data term,
//     pairwise = Potts-style agreement bonus.
//
// Complexity:
//
//   - Build:  O(W×H×(L + d×L²)), Memory: O(W×H×d×L²)   (L labels, d = 2 or 4 forward neighbours).
//   - Solve:  O(rounds×W×H×d×L²).
//   - Labels: O(W×H×d×L²).
//
// Options:
//
//   - Options.Labels: number of labels per cell (≥ 2).
//   - Options.Conn: Conn4 (orthogonal) or Conn8 (plus diagonals).
//   - Options.Unary / Options.Pairwise: score callbacks, higher is
//     better — negate costs when porting an energy model. Pair with an
//     optimizing ring such as semiring.MaxSum.
//
// Errors:
//
//   - ErrEmptyGrid: width or height below one.
//   - ErrBadLabelCount: fewer than two labels.
//   - ErrNilScore: a score callback was left nil.
//
// The schedule is approximate: on a grid the underlying factor graph is
// loopy, so Labels returns the belief-propagation estimate, not a
// guaranteed global optimum.
package gridmrf
