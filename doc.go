// Package gdl is your in-memory toolkit for semiring-parameterized
// inference on factor graphs — the Generalized Distributive Law (GDL)
// unifying belief propagation, MAP optimization and constraint
// satisfaction under one algebraic roof.
//
// 🚀 What is gdl?
//
//	A modern, deterministic, pure-Go library that brings together:
//		• Semirings: sum-product, max-sum, max-product, boolean — or your own
//		• Tabulated functions: join, marginalize, eliminate, normalize
//		• Factor graphs: variable & factor nodes, explicit edge wiring
//		• Exact message passing on trees (the classic GDL schedule)
//		• Cycle splitting: exact MAP on loopy graphs via remote neighbours
//		• Residual loopy propagation with per-edge update suppression
//		• Grid MRFs: pairwise Markov random fields over 2D label grids
//
// ✨ Why choose gdl?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Deterministic – insertion-ordered scheduling, no map-order surprises
//   - Pure Go – no cgo, no hidden deps
//   - Algebra-first – swap the semiring, keep the algorithm
//
// Under the hood, everything is organized under four subpackages:
//
//	semiring/    — commutative semiring operators (⊕, 0, ⊗, 1, ⊗⁻¹)
//	tabfunc/     — tabulated functions over named finite-domain variables
//	factorgraph/ — nodes, messages, scheduling, marginal & MAP queries
//	gridmrf/     — pairwise MRF builder for 2D label grids
//
// Quick ASCII example:
//
//	    x1 ──(a12)── x2 ──(a23)── x3
//
//	a chain of three variables tied by two pairwise factors; two sweeps
//	of messages compute every marginal exactly.
//
// Dive into examples/ for a Bayesian alarm network, MAP on a split
// ring of sensors, and grid-MRF image denoising.
//
//	go get github.com/katalvlaran/gdl
package gdl
