package eval

import (
	buildcond "github.com/buildcond/buildcond-go"
)

// Context is the per-pass evaluation state threaded through the tree. It
// lends the caller's capability State to the nodes for the duration of one
// evaluation pass and carries the pass-scoped bookkeeping that used to be
// tempting to embed in the nodes themselves: the "conditioned properties
// already recorded" gate and the expansion cache, both keyed by node
// identity.
//
// A Context must not be shared by two passes running at once. Independent
// concurrent passes over the same tree each need their own Context.
type Context struct {
	State     buildcond.State
	Condition string
	Location  buildcond.Location

	lenient  bool
	recorded map[Node]struct{}
	expanded map[Node]string
}

// NewContext builds a strict evaluation context for one pass over a tree.
func NewContext(state buildcond.State, condition string, loc buildcond.Location) *Context {
	return &Context{
		State:     state,
		Condition: condition,
		Location:  loc,
		recorded:  make(map[Node]struct{}),
		expanded:  make(map[Node]string),
	}
}

// ResetPass clears the pass-scoped bookkeeping so the same tree and context
// can run a new, independent evaluation pass. Without a reset, a comparison
// node that already recorded its conditioned properties this pass stays
// silent, which under-reports the table on subsequent passes.
func (c *Context) ResetPass() {
	clear(c.recorded)
	clear(c.expanded)
}

// beginRecord reports whether the node's conditioned-properties side effect
// has not yet run this pass, and marks it run.
func (c *Context) beginRecord(n Node) bool {
	if _, done := c.recorded[n]; done {
		return false
	}
	c.recorded[n] = struct{}{}
	return true
}

// illFormed builds the user-facing diagnostic for a malformed condition,
// carrying the original condition text and its source location.
func (c *Context) illFormed(format string, args ...interface{}) error {
	return buildcond.NewIllFormedConditionError(c.Condition, c.Location, format, args...)
}

// internal reports a violated evaluator invariant. In lenient mode it
// returns nil so the caller can continue best-effort.
func (c *Context) internal(format string, args ...interface{}) error {
	if c.lenient {
		return nil
	}
	return buildcond.NewInternalError(format, args...)
}
