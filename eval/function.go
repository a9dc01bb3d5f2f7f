package eval

import (
	"os"
	"strings"
)

// functionNode is a builtin function invocation. The builtin set is small:
// Exists checks the filesystem for the expanded path, HasTrailingSlash
// inspects the expanded text. Item transforms are not part of the condition
// language.
type functionNode struct {
	name string
	args []Node
}

func (n *functionNode) BoolEvaluate(ctx *Context) (bool, error) {
	switch strings.ToLower(n.name) {
	case "exists":
		arg, err := n.singleArg(ctx)
		if err != nil {
			return false, err
		}
		path := strings.TrimSpace(arg)
		if path == "" {
			return false, nil
		}
		_, statErr := os.Stat(path)
		return statErr == nil, nil

	case "hastrailingslash":
		arg, err := n.singleArg(ctx)
		if err != nil {
			return false, err
		}
		return strings.HasSuffix(arg, "/") || strings.HasSuffix(arg, `\`), nil

	default:
		return false, ctx.illFormed("unknown function %q", n.name)
	}
}

func (n *functionNode) singleArg(ctx *Context) (string, error) {
	if len(n.args) != 1 || n.args[0] == nil {
		return "", ctx.illFormed("function %q expects exactly one argument", n.name)
	}
	return n.args[0].StringEvaluate(ctx)
}

func (n *functionNode) TryNumericEvaluate(*Context) (float64, bool, error) {
	return 0, false, nil
}

func (n *functionNode) TryBoolEvaluate(ctx *Context) (bool, bool, error) {
	v, err := n.BoolEvaluate(ctx)
	if err != nil {
		return false, false, err
	}
	return v, true, nil
}

func (n *functionNode) StringEvaluate(ctx *Context) (string, error) {
	return "", ctx.illFormed("function %q cannot be expanded to a string", n.name)
}

func (n *functionNode) EvaluatesToEmpty(*Context) (bool, error) {
	return false, nil
}

func (n *functionNode) UnexpandedValue() (string, bool) {
	return "", false
}
