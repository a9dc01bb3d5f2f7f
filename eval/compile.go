package eval

import (
	buildcond "github.com/buildcond/buildcond-go"
	"github.com/buildcond/buildcond-go/ast"
)

// Compile converts a parsed grammar tree into an evaluatable node tree.
// The grammar guarantees well-shaped input, so failures here are internal
// errors, not user diagnostics.
func Compile(parsed *ast.Condition) (Node, error) {
	if parsed == nil || parsed.Expr == nil {
		return nil, buildcond.NewInternalError("compile called with no parse tree")
	}
	return compileOr(parsed.Expr)
}

func compileOr(expr *ast.OrExpr) (Node, error) {
	node, err := compileAnd(expr.Left)
	if err != nil {
		return nil, err
	}
	for _, right := range expr.Right {
		rightNode, err := compileAnd(right)
		if err != nil {
			return nil, err
		}
		node = &orNode{left: node, right: rightNode}
	}
	return node, nil
}

func compileAnd(expr *ast.AndExpr) (Node, error) {
	node, err := compileNot(expr.Left)
	if err != nil {
		return nil, err
	}
	for _, right := range expr.Right {
		rightNode, err := compileNot(right)
		if err != nil {
			return nil, err
		}
		node = &andNode{left: node, right: rightNode}
	}
	return node, nil
}

func compileNot(expr *ast.NotExpr) (Node, error) {
	if expr.Negated != nil {
		child, err := compileNot(expr.Negated)
		if err != nil {
			return nil, err
		}
		return &notNode{child: child}, nil
	}
	return compileComparison(expr.Cmp)
}

func compileComparison(expr *ast.Comparison) (Node, error) {
	left, err := compileOperand(expr.Left)
	if err != nil {
		return nil, err
	}
	if expr.Op == "" {
		return left, nil
	}

	cmp, ok := comparers[expr.Op]
	if !ok {
		return nil, buildcond.NewInternalError("lexer produced unrecognized comparison operator %q", expr.Op)
	}

	// A nil right child compiles; evaluation reports it as an ill-formed
	// condition, since the missing operand is the user's mistake.
	var right Node
	if expr.Right != nil {
		right, err = compileOperand(expr.Right)
		if err != nil {
			return nil, err
		}
	}
	return &comparisonNode{cmp: cmp, left: left, right: right}, nil
}

func compileOperand(op *ast.Operand) (Node, error) {
	switch {
	case op == nil:
		return nil, nil
	case op.Sub != nil:
		return compileOr(op.Sub)
	case op.Str != nil:
		return newStringNode(ast.Unquote(*op.Str)), nil
	case op.Number != nil:
		value, ok := buildcond.NumericValue(*op.Number)
		if !ok {
			return nil, buildcond.NewInternalError("lexer produced unparseable number %q", *op.Number)
		}
		return &numericNode{raw: *op.Number, value: value}, nil
	case op.Property != nil:
		return newStringNode(*op.Property), nil
	case op.ItemList != nil:
		return newStringNode(*op.ItemList), nil
	case op.Metadata != nil:
		return newStringNode(*op.Metadata), nil
	case op.Call != nil:
		args := make([]Node, 0, len(op.Call.Args))
		for _, arg := range op.Call.Args {
			compiled, err := compileOperand(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, compiled)
		}
		return &functionNode{name: op.Call.Name, args: args}, nil
	case op.Bare != nil:
		return newStringNode(*op.Bare), nil
	default:
		return nil, buildcond.NewInternalError("operand has no recognizable shape")
	}
}
