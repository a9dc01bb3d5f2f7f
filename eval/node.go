// Package eval holds the compiled expression-node hierarchy for condition
// expressions and the evaluator that drives it. A compiled tree's topology is
// immutable; all per-pass state (side-effect gating, expansion caching) lives
// in the Context threaded through the recursive calls, so one tree can be
// reused across passes and shared by concurrent passes that each carry their
// own Context.
package eval

// Node is one element of a compiled condition tree. Every node supports four
// evaluation modes: boolean, numeric, string, and an emptiness probe that
// answers without forcing full expansion when the evaluation state can.
type Node interface {
	// BoolEvaluate evaluates the node as a boolean. A node that cannot be
	// read as a boolean reports an ill-formed-condition error.
	BoolEvaluate(ctx *Context) (bool, error)

	// TryNumericEvaluate attempts numeric evaluation, failing closed. The
	// error is non-nil only for unrecoverable problems such as a failed
	// expansion, never for plain coercion failure.
	TryNumericEvaluate(ctx *Context) (float64, bool, error)

	// TryBoolEvaluate attempts boolean evaluation, failing closed.
	TryBoolEvaluate(ctx *Context) (bool, bool, error)

	// StringEvaluate evaluates the node to its fully substituted string form.
	StringEvaluate(ctx *Context) (string, error)

	// EvaluatesToEmpty reports whether the node expands to the empty string.
	EvaluatesToEmpty(ctx *Context) (bool, error)

	// UnexpandedValue returns the node's raw pre-substitution text when the
	// node is a single bare property reference like "$(Configuration)"; it is
	// the key into the conditioned-properties table. ok is false for every
	// other node shape, which suppresses tracking for that side.
	UnexpandedValue() (string, bool)
}
