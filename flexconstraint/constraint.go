// Package flexconstraint implements the constraint-validation subsystem
// referenced, but not defined, by spec.md's ConstraintChecked
// transformation: per-field Assert/Check rules evaluated by the struct
// coercer after a field value is produced.
package flexconstraint

import "fmt"

// Level distinguishes a hard failure (Assert) from an advisory one
// (Check).
type Level int

const (
	// Check records a failing constraint as a transformation and lets
	// coercion proceed.
	Check Level = iota
	// Assert aborts the enclosing coercion branch on failure.
	Assert
)

func (l Level) String() string {
	if l == Assert {
		return "assert"
	}

	return "check"
}

// Constraint is a single named validation rule attached to a struct field
// via coerce.WithConstraints.
type Constraint struct {
	Level       Level
	Name        string
	Description string
	Func        func(any) bool
}

// Result records the outcome of evaluating one Constraint against a
// coerced field value.
type Result struct {
	Constraint Constraint
	Passed     bool
}

// Error reports a failing Assert-level constraint, wrapped by coerce into
// ErrInvalidValue.
func (r Result) Error() string {
	return fmt.Sprintf("constraint %q (%s) failed", r.Constraint.Name, r.Constraint.Level)
}

// Evaluate runs c against value and returns the Result.
func Evaluate(c Constraint, value any) Result {
	return Result{Constraint: c, Passed: c.Func(value)}
}
