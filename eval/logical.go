package eval

// andNode evaluates `left and right`, short-circuiting on a false left side.
type andNode struct {
	left  Node
	right Node
}

func (n *andNode) BoolEvaluate(ctx *Context) (bool, error) {
	if n.left == nil || n.right == nil {
		return false, ctx.illFormed("logical 'and' is missing an operand")
	}
	left, err := n.left.BoolEvaluate(ctx)
	if err != nil || !left {
		return false, err
	}
	return n.right.BoolEvaluate(ctx)
}

func (n *andNode) TryNumericEvaluate(*Context) (float64, bool, error) {
	return 0, false, nil
}

func (n *andNode) TryBoolEvaluate(ctx *Context) (bool, bool, error) {
	v, err := n.BoolEvaluate(ctx)
	if err != nil {
		return false, false, err
	}
	return v, true, nil
}

func (n *andNode) StringEvaluate(ctx *Context) (string, error) {
	return "", ctx.illFormed("logical 'and' cannot be expanded to a string")
}

func (n *andNode) EvaluatesToEmpty(*Context) (bool, error) {
	return false, nil
}

func (n *andNode) UnexpandedValue() (string, bool) {
	return "", false
}

// orNode evaluates `left or right`, short-circuiting on a true left side.
type orNode struct {
	left  Node
	right Node
}

func (n *orNode) BoolEvaluate(ctx *Context) (bool, error) {
	if n.left == nil || n.right == nil {
		return false, ctx.illFormed("logical 'or' is missing an operand")
	}
	left, err := n.left.BoolEvaluate(ctx)
	if err != nil || left {
		return left, err
	}
	return n.right.BoolEvaluate(ctx)
}

func (n *orNode) TryNumericEvaluate(*Context) (float64, bool, error) {
	return 0, false, nil
}

func (n *orNode) TryBoolEvaluate(ctx *Context) (bool, bool, error) {
	v, err := n.BoolEvaluate(ctx)
	if err != nil {
		return false, false, err
	}
	return v, true, nil
}

func (n *orNode) StringEvaluate(ctx *Context) (string, error) {
	return "", ctx.illFormed("logical 'or' cannot be expanded to a string")
}

func (n *orNode) EvaluatesToEmpty(*Context) (bool, error) {
	return false, nil
}

func (n *orNode) UnexpandedValue() (string, bool) {
	return "", false
}

// notNode negates its child.
type notNode struct {
	child Node
}

func (n *notNode) BoolEvaluate(ctx *Context) (bool, error) {
	if n.child == nil {
		return false, ctx.illFormed("logical '!' is missing its operand")
	}
	v, err := n.child.BoolEvaluate(ctx)
	if err != nil {
		return false, err
	}
	return !v, nil
}

func (n *notNode) TryNumericEvaluate(*Context) (float64, bool, error) {
	return 0, false, nil
}

func (n *notNode) TryBoolEvaluate(ctx *Context) (bool, bool, error) {
	v, err := n.BoolEvaluate(ctx)
	if err != nil {
		return false, false, err
	}
	return v, true, nil
}

func (n *notNode) StringEvaluate(ctx *Context) (string, error) {
	return "", ctx.illFormed("logical '!' cannot be expanded to a string")
}

func (n *notNode) EvaluatesToEmpty(*Context) (bool, error) {
	return false, nil
}

func (n *notNode) UnexpandedValue() (string, bool) {
	return "", false
}
