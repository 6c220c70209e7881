package tabfunc

import (
	"fmt"

	"github.com/katalvlaran/gdl/semiring"
)

// Func is an immutable tabulated function: an ordered list of variable
// names, a finite ordered domain per variable, and a dense table
// holding one semiring value per joint assignment.
//
// The variable order is significant — it defines the row-major table
// layout (first variable slowest) — and is preserved deliberately by
// every derived function; it is never inferred from map iteration.
type Func struct {
	vars    []string                 // significant order; defines the table layout
	domains map[string][]Value       // per-variable ordered finite domain
	index   map[string]map[Value]int // value → position within its domain
	strides []int                    // strides[i] = Π sizes of vars[i+1:]
	table   []float64                // dense, len = Π all domain sizes
}

// newFunc validates vars/domains, deep-copies them and allocates a
// zero-filled table. Shared slices from the caller are never retained.
func newFunc(vars []string, domains map[string][]Value) (*Func, error) {
	f := &Func{
		vars:    make([]string, len(vars)),
		domains: make(map[string][]Value, len(vars)),
		index:   make(map[string]map[Value]int, len(vars)),
		strides: make([]int, len(vars)),
	}
	copy(f.vars, vars)

	size := 1
	var name string
	for _, name = range f.vars {
		if _, dup := f.domains[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
		}
		dom := domains[name]
		if len(dom) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyDomain, name)
		}
		own := make([]Value, len(dom))
		copy(own, dom)
		idx := make(map[Value]int, len(dom))
		for pos, v := range own {
			if _, dup := idx[v]; dup {
				return nil, fmt.Errorf("%w: %q has %v twice", ErrDuplicateValue, name, v)
			}
			idx[v] = pos
		}
		f.domains[name] = own
		f.index[name] = idx
		size *= len(own)
	}

	// Row-major strides: last variable is contiguous.
	stride := 1
	for i := len(f.vars) - 1; i >= 0; i-- {
		f.strides[i] = stride
		stride *= len(f.domains[f.vars[i]])
	}
	f.table = make([]float64, size)

	return f, nil
}

// Tabulate builds a Func by evaluating eval at every joint assignment
// of the declared domains. This is the canonical way to wrap a pure
// computation with an explicit domain.
//
// Complexity: O(Π|domains|) calls to eval.
func Tabulate(vars []string, domains map[string][]Value, eval func(Assignment) float64) (*Func, error) {
	if eval == nil {
		return nil, ErrNilEval
	}
	f, err := newFunc(vars, domains)
	if err != nil {
		return nil, err
	}
	f.eachIndex(func(idx int, pos []int) {
		a := make(Assignment, len(f.vars))
		for i, name := range f.vars {
			a[name] = f.domains[name][pos[i]]
		}
		f.table[idx] = eval(a)
	})

	return f, nil
}

// FromTable builds a Func from an explicit dense table given in
// row-major variable order (first variable slowest). The values slice
// is copied, never retained.
func FromTable(vars []string, domains map[string][]Value, values []float64) (*Func, error) {
	f, err := newFunc(vars, domains)
	if err != nil {
		return nil, err
	}
	if len(values) != len(f.table) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrTableSize, len(values), len(f.table))
	}
	copy(f.table, values)

	return f, nil
}

// Constant builds a Func whose every entry equals c.
func Constant(vars []string, domains map[string][]Value, c float64) (*Func, error) {
	f, err := newFunc(vars, domains)
	if err != nil {
		return nil, err
	}
	for i := range f.table {
		f.table[i] = c
	}

	return f, nil
}

// Unity builds the multiplicative-identity function over a single
// variable: every entry is ring.One. Joining with a Unity and
// projecting back is a no-op — variable nodes use it as their own
// function.
func Unity(name string, domain []Value, ring semiring.Ring) (*Func, error) {
	return Constant([]string{name}, map[string][]Value{name: domain}, ring.One)
}

// Vars returns the ordered variable names (a copy).
func (f *Func) Vars() []string {
	out := make([]string, len(f.vars))
	copy(out, f.vars)

	return out
}

// Domain returns the ordered domain of name (a copy) and whether the
// function carries that variable.
func (f *Func) Domain(name string) ([]Value, bool) {
	dom, ok := f.domains[name]
	if !ok {
		return nil, false
	}
	out := make([]Value, len(dom))
	copy(out, dom)

	return out, true
}

// HasVar reports whether the function carries the named variable.
func (f *Func) HasVar(name string) bool {
	_, ok := f.domains[name]

	return ok
}

// Size returns the number of table entries (the domain product).
func (f *Func) Size() int { return len(f.table) }

// At evaluates the function at the given assignment. Variables in a
// that the function does not carry are ignored (projection); a missing
// or out-of-domain value for a carried variable yields
// ErrUndefinedAssignment.
func (f *Func) At(a Assignment) (float64, error) {
	off := 0
	for i, name := range f.vars {
		v, ok := a[name]
		if !ok {
			return 0, fmt.Errorf("%w: no value for %q", ErrUndefinedAssignment, name)
		}
		pos, ok := f.index[name][v]
		if !ok {
			return 0, fmt.Errorf("%w: %v not in domain of %q", ErrUndefinedAssignment, v, name)
		}
		off += pos * f.strides[i]
	}

	return f.table[off], nil
}

// ArgMax finds the assignment maximizing the table by brute force and
// returns it with the maximum value. Ties break toward the earliest
// assignment in table order. A zero-variable function yields an empty
// assignment.
//
// Complexity: O(|table|).
func (f *Func) ArgMax() (Assignment, float64) {
	best, bestIdx := f.table[0], 0
	for i, v := range f.table {
		if v > best {
			best, bestIdx = v, i
		}
	}
	a := make(Assignment, len(f.vars))
	rem := bestIdx
	for i, name := range f.vars {
		a[name] = f.domains[name][rem/f.strides[i]]
		rem %= f.strides[i]
	}

	return a, best
}

// AlmostEqual reports whether g has the same variables, domains and
// layout as f and every pair of table entries is equal or within eps.
// Exact equality is checked first so ±Inf entries compare clean.
func (f *Func) AlmostEqual(g *Func, eps float64) bool {
	if g == nil || len(f.vars) != len(g.vars) {
		return false
	}
	for i, name := range f.vars {
		if g.vars[i] != name {
			return false
		}
		gd := g.domains[name]
		fd := f.domains[name]
		if len(gd) != len(fd) {
			return false
		}
		for j := range fd {
			if fd[j] != gd[j] {
				return false
			}
		}
	}
	for i, v := range f.table {
		w := g.table[i]
		if v == w {
			continue
		}
		d := v - w
		if d < 0 {
			d = -d
		}
		if d > eps {
			return false
		}
	}

	return true
}

// eachIndex walks every table entry in layout order, handing the dense
// index and the per-variable domain positions to fn. The pos slice is
// reused between calls; fn must not retain it.
func (f *Func) eachIndex(fn func(idx int, pos []int)) {
	pos := make([]int, len(f.vars))
	for idx := range f.table {
		fn(idx, pos)
		// Odometer increment, last variable fastest.
		for i := len(pos) - 1; i >= 0; i-- {
			pos[i]++
			if pos[i] < len(f.domains[f.vars[i]]) {
				break
			}
			pos[i] = 0
		}
	}
}

// domainsEqual reports whether two ordered domains are identical.
func domainsEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
