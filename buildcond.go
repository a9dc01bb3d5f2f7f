// Package buildcond evaluates boolean condition expressions embedded in a
// build description, such as `'$(Configuration)' == 'Debug' and '@(Src)' != ''`.
// Conditions gate whether a target, item, or property participates in a build.
//
// The root package holds the contracts shared by the parser, the expression
// node hierarchy (package eval), and the evaluation-state implementations
// (package state).
package buildcond

import "fmt"

// Location identifies where a condition appears in its source document, for
// diagnostics.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return "<condition>"
	}
	if l.Line == 0 {
		return l.File
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// State is the capability object a condition tree evaluates against. It
// expands property, item, and metadata references to strings and answers
// coercion questions about expanded text. Implementations live in package
// state; callers may supply their own.
//
// A State is lent to the tree for the duration of one evaluation call and
// must not be retained by the tree beyond it.
type State interface {
	// Expand returns the fully substituted form of unexpanded text. An empty
	// string is a legal success value; a non-nil error signals an
	// unrecoverable expansion failure, which evaluation surfaces as an
	// ill-formed-condition diagnostic.
	Expand(unexpanded string) (string, error)

	// EvaluatesToEmpty reports whether unexpanded text expands to the empty
	// string, answering without full expansion when it can. It must be
	// sound: it never claims empty when the true expansion is non-empty.
	EvaluatesToEmpty(unexpanded string) (bool, error)

	// TryNumeric attempts numeric coercion of expanded text. It fails closed:
	// any ambiguity reports false rather than a best-effort value.
	TryNumeric(expanded string) (float64, bool)

	// TryBool attempts boolean coercion of expanded text. Only canonical
	// boolean tokens coerce; everything else fails closed.
	TryBool(expanded string) (bool, bool)

	// ConditionedProperties returns the table recording which literal values
	// each property has been compared against, or nil when tracking is
	// disabled.
	ConditionedProperties() *ConditionedProperties
}
