// Package tabfunc: core types and sentinel errors for the tabulated
// function algebra.
package tabfunc

import "errors"

// Value is a single element of a variable's domain: any comparable Go
// value (int, bool, string, …). Domains are ordered finite sequences
// of distinct Values.
type Value = interface{}

// Assignment maps variable names to domain values. Operations that
// take an Assignment project it onto the variables they know about and
// ignore the rest.
type Assignment map[string]Value

// Sentinel errors for tabulated-function operations.
var (
	// ErrNilFunc indicates a nil *Func was passed to an operation.
	ErrNilFunc = errors.New("tabfunc: function is nil")

	// ErrNilEval indicates a nil evaluation callback was passed to Tabulate.
	ErrNilEval = errors.New("tabfunc: evaluation callback is nil")

	// ErrDuplicateVariable indicates the same variable name appears twice
	// in a function's variable list.
	ErrDuplicateVariable = errors.New("tabfunc: duplicate variable name")

	// ErrEmptyDomain indicates a variable has a missing or empty domain.
	ErrEmptyDomain = errors.New("tabfunc: variable domain is missing or empty")

	// ErrDuplicateValue indicates a domain contains the same value twice.
	ErrDuplicateValue = errors.New("tabfunc: duplicate value in domain")

	// ErrTableSize indicates an explicit table whose length does not match
	// the product of the domain sizes.
	ErrTableSize = errors.New("tabfunc: table length does not match domain product")

	// ErrUnknownVariable indicates an operation referenced a variable the
	// function does not carry.
	ErrUnknownVariable = errors.New("tabfunc: unknown variable")

	// ErrDomainMismatch indicates a join of two functions sharing a
	// variable name whose domains differ. Non-recoverable: rebuild the
	// functions with consistent domains.
	ErrDomainMismatch = errors.New("tabfunc: shared variable has mismatched domains")

	// ErrNoInverse indicates normalization or normalized conditioning was
	// requested on a ring without an inverse-⊗ operator.
	ErrNoInverse = errors.New("tabfunc: ring has no inverse multiplication")

	// ErrUndefinedAssignment indicates a lookup or elimination referenced
	// a variable/value pair outside the function's declared domain.
	ErrUndefinedAssignment = errors.New("tabfunc: assignment outside declared domain")
)
