package eval

import (
	"regexp"
	"strings"
)

// barePropertyPattern matches text that is exactly one property reference.
var barePropertyPattern = regexp.MustCompile(`^\$\([A-Za-z_][A-Za-z0-9_]*\)$`)

// stringNode is a quoted or bare textual operand. Its text may contain
// property ($()), item (@()), and metadata (%()) references that the
// evaluation state substitutes at evaluation time.
type stringNode struct {
	text         string
	bareProperty bool
}

func newStringNode(text string) *stringNode {
	return &stringNode{
		text:         text,
		bareProperty: barePropertyPattern.MatchString(text),
	}
}

// expand returns the node's fully substituted text, caching the result in
// the context for the remainder of the pass.
func (n *stringNode) expand(ctx *Context) (string, error) {
	if v, ok := ctx.expanded[n]; ok {
		return v, nil
	}
	v, err := ctx.State.Expand(n.text)
	if err != nil {
		return "", ctx.illFormed("cannot expand %q: %v", n.text, err)
	}
	ctx.expanded[n] = v
	return v, nil
}

func (n *stringNode) BoolEvaluate(ctx *Context) (bool, error) {
	v, ok, err := n.TryBoolEvaluate(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ctx.illFormed("%q did not evaluate to a boolean", n.text)
	}
	return v, nil
}

func (n *stringNode) TryNumericEvaluate(ctx *Context) (float64, bool, error) {
	expanded, err := n.expand(ctx)
	if err != nil {
		return 0, false, err
	}
	v, ok := ctx.State.TryNumeric(expanded)
	return v, ok, nil
}

func (n *stringNode) TryBoolEvaluate(ctx *Context) (bool, bool, error) {
	expanded, err := n.expand(ctx)
	if err != nil {
		return false, false, err
	}
	v, ok := ctx.State.TryBool(expanded)
	return v, ok, nil
}

func (n *stringNode) StringEvaluate(ctx *Context) (string, error) {
	return n.expand(ctx)
}

func (n *stringNode) EvaluatesToEmpty(ctx *Context) (bool, error) {
	if v, ok := ctx.expanded[n]; ok {
		return v == "", nil
	}
	if !hasReferences(n.text) {
		return n.text == "", nil
	}
	empty, err := ctx.State.EvaluatesToEmpty(n.text)
	if err != nil {
		return false, ctx.illFormed("cannot expand %q: %v", n.text, err)
	}
	return empty, nil
}

func (n *stringNode) UnexpandedValue() (string, bool) {
	if n.bareProperty {
		return n.text, true
	}
	return "", false
}

func hasReferences(text string) bool {
	return strings.Contains(text, "$(") ||
		strings.Contains(text, "@(") ||
		strings.Contains(text, "%(")
}

// numericNode is a decimal or hexadecimal numeric literal, parsed once at
// tree construction.
type numericNode struct {
	raw   string
	value float64
}

func (n *numericNode) BoolEvaluate(ctx *Context) (bool, error) {
	return false, ctx.illFormed("numeric value %q cannot be evaluated as a boolean", n.raw)
}

func (n *numericNode) TryNumericEvaluate(*Context) (float64, bool, error) {
	return n.value, true, nil
}

func (n *numericNode) TryBoolEvaluate(*Context) (bool, bool, error) {
	return false, false, nil
}

func (n *numericNode) StringEvaluate(*Context) (string, error) {
	return n.raw, nil
}

func (n *numericNode) EvaluatesToEmpty(*Context) (bool, error) {
	return false, nil
}

func (n *numericNode) UnexpandedValue() (string, bool) {
	return "", false
}
