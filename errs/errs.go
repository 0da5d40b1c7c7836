// Package errs defines the typed error kinds raised across the selection
// engine, following the error-kind-per-failure-mode idiom dolthub uses in
// its auth package: a package-level errors.NewKind("...") per failure
// mode, instantiated with .New(args...) at the call site.
package errs

import "gopkg.in/src-d/go-errors.v1"

var (
	// ConfigError indicates a malformed universe.json or selection.json:
	// missing required fields, wrong types, or duplicate codes.
	ConfigError = errors.NewKind("config error: %s")

	// ParseError wraps a failure to parse a selection expression.
	ParseError = errors.NewKind("parse error in %q: %s")

	// DataError indicates malformed input data: wrong column count, a
	// value that cannot be coerced to its declared type, or a missing
	// required input column.
	DataError = errors.NewKind("data error: %s")

	// EvaluationError indicates a failure evaluating an expression or
	// materializing an attribute against a concrete row.
	EvaluationError = errors.NewKind("evaluation error for %s: %s")

	// UnknownAttribute is raised when a referenced attribute code does
	// not resolve in the universe.
	UnknownAttribute = errors.NewKind("unknown attribute: %s")

	// CyclicUniverse is raised when the dependency resolver detects a
	// cycle while computing an attribute's transitive closure.
	CyclicUniverse = errors.NewKind("cyclic dependency in universe: %s")

	// ColumnConflict is raised when two steps in a plan attempt to
	// materialize the same column with incompatible definitions.
	ColumnConflict = errors.NewKind("column conflict on %s: %s")
)
