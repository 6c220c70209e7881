// Package tabfunc: the ring-parameterized algebra over tabulated
// functions. All operations are pure — the inputs are never mutated
// and every result is a freshly allocated Func.
package tabfunc

import (
	"fmt"

	"github.com/katalvlaran/gdl/semiring"
)

// Join combines two functions with the ring's ⊗ operator over the
// relational join of their variables.
//
// Algorithm outline:
//  1. The result's variable order is f1's variables followed by f2's
//     variables not already present (f1-major order).
//  2. Any shared variable must carry an identical ordered domain in
//     both functions; otherwise ErrDomainMismatch.
//  3. For every joint assignment over the union domain,
//     result = ring.Mul(f1(projection), f2(projection)).
//
// Complexity:
//
//   - Time:  O(Π|domains in the union|)
//   - Space: O(Π|domains in the union|)
//
// The cost is the product of all distinct domain sizes, so callers
// should marginalize variables out before joining whenever possible.
func Join(f1, f2 *Func, ring semiring.Ring) (*Func, error) {
	if f1 == nil || f2 == nil {
		return nil, ErrNilFunc
	}

	// 1) Union variable order: f1's order, then f2's novelties.
	unionVars := make([]string, 0, len(f1.vars)+len(f2.vars))
	unionVars = append(unionVars, f1.vars...)
	unionDomains := make(map[string][]Value, len(f1.vars)+len(f2.vars))
	var name string
	for _, name = range f1.vars {
		unionDomains[name] = f1.domains[name]
	}
	for _, name = range f2.vars {
		if d1, shared := unionDomains[name]; shared {
			// 2) Shared variables must agree on their domains.
			if !domainsEqual(d1, f2.domains[name]) {
				return nil, fmt.Errorf("%w: %q", ErrDomainMismatch, name)
			}

			continue
		}
		unionVars = append(unionVars, name)
		unionDomains[name] = f2.domains[name]
	}

	out, err := newFunc(unionVars, unionDomains)
	if err != nil {
		return nil, err
	}

	// Precompute, per input, the union-position of each of its variables
	// so both source offsets fall out of simple stride arithmetic.
	unionPos := make(map[string]int, len(out.vars))
	for i, name := range out.vars {
		unionPos[name] = i
	}
	src1 := projectionStrides(f1, unionPos, len(out.vars))
	src2 := projectionStrides(f2, unionPos, len(out.vars))

	// 3) Combine entrywise over the union table.
	out.eachIndex(func(idx int, pos []int) {
		o1, o2 := 0, 0
		for u, p := range pos {
			o1 += p * src1[u]
			o2 += p * src2[u]
		}
		out.table[idx] = ring.Mul(f1.table[o1], f2.table[o2])
	})

	return out, nil
}

// projectionStrides maps every union-variable position to the stride it
// contributes in src's table (zero for variables src does not carry).
func projectionStrides(src *Func, unionPos map[string]int, unionLen int) []int {
	strides := make([]int, unionLen)
	for i, name := range src.vars {
		strides[unionPos[name]] = src.strides[i]
	}

	return strides
}

// MarginalizeOut removes one variable by folding the ring's ⊕ operator
// over its domain. The result carries f's variables minus name, in
// unchanged order.
//
// Complexity: O(|f.table|) time, O(|f.table| / |domain(name)|) space.
func MarginalizeOut(f *Func, ring semiring.Ring, name string) (*Func, error) {
	if f == nil {
		return nil, ErrNilFunc
	}
	removed := -1
	for i, v := range f.vars {
		if v == name {
			removed = i

			break
		}
	}
	if removed < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}

	keptVars := make([]string, 0, len(f.vars)-1)
	keptDomains := make(map[string][]Value, len(f.vars)-1)
	for i, v := range f.vars {
		if i == removed {
			continue
		}
		keptVars = append(keptVars, v)
		keptDomains[v] = f.domains[v]
	}
	out, err := newFunc(keptVars, keptDomains)
	if err != nil {
		return nil, err
	}

	// srcStrides[i] is the stride in f for the i-th kept variable.
	srcStrides := make([]int, len(keptVars))
	j := 0
	for i := range f.vars {
		if i == removed {
			continue
		}
		srcStrides[j] = f.strides[i]
		j++
	}
	removedStride := f.strides[removed]
	removedSize := len(f.domains[name])

	out.eachIndex(func(idx int, pos []int) {
		base := 0
		for i, p := range pos {
			base += p * srcStrides[i]
		}
		total := ring.Zero
		for k := 0; k < removedSize; k++ {
			total = ring.Add(total, f.table[base+k*removedStride])
		}
		out.table[idx] = total
	})

	return out, nil
}

// Marginalize folds out every variable not listed in keep. Elimination
// order does not affect the result (⊕ is associative and commutative),
// only its cost; variables are removed in f's declared order. Names in
// keep the function does not carry are ignored.
func Marginalize(f *Func, ring semiring.Ring, keep []string) (*Func, error) {
	if f == nil {
		return nil, ErrNilFunc
	}
	keepSet := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		keepSet[name] = struct{}{}
	}

	var err error
	for _, name := range f.Vars() { // snapshot: f is reassigned below
		if _, kept := keepSet[name]; kept {
			continue
		}
		if f, err = MarginalizeOut(f, ring, name); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Eliminate fixes the given variables to the given values (selection),
// producing a function over the remaining variables. Assignment
// entries for variables f does not carry are ignored; when none apply,
// f itself is returned (it is immutable, so sharing is safe).
//
// When normalize is true the ring must carry an inverse-⊗ operator
// (ErrNoInverse otherwise) and every remaining entry is divided by the
// value the fixed-variables-only marginal takes at the assignment —
// conditioning in the probability reading.
func Eliminate(f *Func, ring semiring.Ring, assign Assignment, normalize bool) (*Func, error) {
	if f == nil {
		return nil, ErrNilFunc
	}

	// Collect applicable fixings in f's variable order.
	fixedPos := make(map[int]int, len(assign)) // var index in f → domain position
	fixedVars := make([]string, 0, len(assign))
	for i, name := range f.vars {
		v, ok := assign[name]
		if !ok {
			continue
		}
		pos, ok := f.index[name][v]
		if !ok {
			return nil, fmt.Errorf("%w: %v not in domain of %q", ErrUndefinedAssignment, v, name)
		}
		fixedPos[i] = pos
		fixedVars = append(fixedVars, name)
	}
	if len(fixedVars) == 0 {
		return f, nil
	}

	norm := 0.0
	if normalize {
		if !ring.HasInverse() {
			return nil, ErrNoInverse
		}
		marg, err := Marginalize(f, ring, fixedVars)
		if err != nil {
			return nil, err
		}
		if norm, err = marg.At(assign); err != nil {
			return nil, err
		}
	}

	keptVars := make([]string, 0, len(f.vars)-len(fixedVars))
	keptDomains := make(map[string][]Value, len(f.vars)-len(fixedVars))
	srcStrides := make([]int, 0, len(f.vars)-len(fixedVars))
	base := 0
	for i, name := range f.vars {
		if pos, fixed := fixedPos[i]; fixed {
			base += pos * f.strides[i]

			continue
		}
		keptVars = append(keptVars, name)
		keptDomains[name] = f.domains[name]
		srcStrides = append(srcStrides, f.strides[i])
	}
	out, err := newFunc(keptVars, keptDomains)
	if err != nil {
		return nil, err
	}

	out.eachIndex(func(idx int, pos []int) {
		off := base
		for i, p := range pos {
			off += p * srcStrides[i]
		}
		v := f.table[off]
		if normalize {
			v = ring.InvMul(v, norm)
		}
		out.table[idx] = v
	})

	return out, nil
}

// Normalize divides every table entry by the ⊕-fold over the entire
// table — under sum-product this rescales the function into a proper
// distribution. Requires an inverse-⊗ operator (ErrNoInverse).
func Normalize(f *Func, ring semiring.Ring) (*Func, error) {
	if f == nil {
		return nil, ErrNilFunc
	}
	total := ring.Zero
	for _, v := range f.table {
		total = ring.Add(total, v)
	}

	return NormalizeBy(f, ring, total)
}

// NormalizeBy divides every table entry by amount via the ring's
// inverse-⊗ operator. Requires an inverse-⊗ operator (ErrNoInverse).
func NormalizeBy(f *Func, ring semiring.Ring, amount float64) (*Func, error) {
	if f == nil {
		return nil, ErrNilFunc
	}
	if !ring.HasInverse() {
		return nil, ErrNoInverse
	}
	out, err := newFunc(f.vars, f.domains)
	if err != nil {
		return nil, err
	}
	for i, v := range f.table {
		out.table[i] = ring.InvMul(v, amount)
	}

	return out, nil
}
