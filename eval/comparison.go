package eval

import "strings"

// Comparer supplies the relational test for one comparison operator over the
// three comparison domains. The operator is chosen once, at tree
// construction; the coercion-order algorithm in comparisonNode is shared by
// every operator.
//
// String comparisons are ordinal and case-insensitive, giving the same
// answer on every platform regardless of locale. Boolean ordering uses the
// total order false < true.
type Comparer interface {
	// Token returns the operator's source token, for diagnostics.
	Token() string
	Numeric(left, right float64) bool
	Bool(left, right bool) bool
	String(left, right string) bool
}

type equalComparer struct{}

func (equalComparer) Token() string             { return "==" }
func (equalComparer) Numeric(l, r float64) bool { return l == r }
func (equalComparer) Bool(l, r bool) bool       { return l == r }
func (equalComparer) String(l, r string) bool   { return strings.EqualFold(l, r) }

type notEqualComparer struct{}

func (notEqualComparer) Token() string             { return "!=" }
func (notEqualComparer) Numeric(l, r float64) bool { return l != r }
func (notEqualComparer) Bool(l, r bool) bool       { return l != r }
func (notEqualComparer) String(l, r string) bool   { return !strings.EqualFold(l, r) }

type lessComparer struct{}

func (lessComparer) Token() string             { return "<" }
func (lessComparer) Numeric(l, r float64) bool { return l < r }
func (lessComparer) Bool(l, r bool) bool       { return !l && r }
func (lessComparer) String(l, r string) bool   { return foldCompare(l, r) < 0 }

type lessEqualComparer struct{}

func (lessEqualComparer) Token() string             { return "<=" }
func (lessEqualComparer) Numeric(l, r float64) bool { return l <= r }
func (lessEqualComparer) Bool(l, r bool) bool       { return !l || r }
func (lessEqualComparer) String(l, r string) bool   { return foldCompare(l, r) <= 0 }

type greaterComparer struct{}

func (greaterComparer) Token() string             { return ">" }
func (greaterComparer) Numeric(l, r float64) bool { return l > r }
func (greaterComparer) Bool(l, r bool) bool       { return l && !r }
func (greaterComparer) String(l, r string) bool   { return foldCompare(l, r) > 0 }

type greaterEqualComparer struct{}

func (greaterEqualComparer) Token() string             { return ">=" }
func (greaterEqualComparer) Numeric(l, r float64) bool { return l >= r }
func (greaterEqualComparer) Bool(l, r bool) bool       { return l || !r }
func (greaterEqualComparer) String(l, r string) bool   { return foldCompare(l, r) >= 0 }

func foldCompare(l, r string) int {
	return strings.Compare(strings.ToLower(l), strings.ToLower(r))
}

// comparers maps operator tokens to their comparison semantics.
var comparers = map[string]Comparer{
	"==": equalComparer{},
	"!=": notEqualComparer{},
	"<":  lessComparer{},
	"<=": lessEqualComparer{},
	">":  greaterComparer{},
	">=": greaterEqualComparer{},
}

// comparisonNode evaluates a binary comparison between two child
// expressions, selecting numeric, boolean, or string semantics dynamically
// from what both sides coerce to.
type comparisonNode struct {
	cmp   Comparer
	left  Node
	right Node
}

// BoolEvaluate implements the shared coercion-order algorithm:
//
//  1. Emptiness short-circuit. Both sides are probed without forcing full
//     expansion; if either is empty the operator's boolean rule compares the
//     two emptiness flags (true = empty). A condition like '@(Src)' != ''
//     therefore never joins a large item list just to learn it is non-empty.
//  2. Numeric. If both sides coerce to numbers the numeric rule decides,
//     taking priority over boolean and string readings: a token like '5.0'
//     admits both a numeric and a textual interpretation, and numeric intent
//     wins when both sides agree on being numeric.
//  3. Boolean. If both sides coerce to canonical boolean tokens.
//  4. String fallback. Both sides are fully expanded; a failed expansion is
//     an ill-formed condition.
//
// The conditioned-properties table is updated exactly once per pass per
// node, on the empty and string paths only: the table catalogues literal
// string alternatives a property is compared against, so numeric and boolean
// comparisons are intentionally not tracked.
func (n *comparisonNode) BoolEvaluate(ctx *Context) (bool, error) {
	if n.left == nil || n.right == nil {
		return false, ctx.illFormed("comparison %q is missing an operand", n.cmp.Token())
	}

	leftEmpty, err := n.left.EvaluatesToEmpty(ctx)
	if err != nil {
		return false, err
	}
	rightEmpty, err := n.right.EvaluatesToEmpty(ctx)
	if err != nil {
		return false, err
	}
	if leftEmpty || rightEmpty {
		if err := n.recordConditionedProperties(ctx); err != nil {
			return false, err
		}
		return n.cmp.Bool(leftEmpty, rightEmpty), nil
	}

	leftNum, leftOK, err := n.left.TryNumericEvaluate(ctx)
	if err != nil {
		return false, err
	}
	if leftOK {
		rightNum, rightOK, err := n.right.TryNumericEvaluate(ctx)
		if err != nil {
			return false, err
		}
		if rightOK {
			return n.cmp.Numeric(leftNum, rightNum), nil
		}
	}

	leftBool, leftOK, err := n.left.TryBoolEvaluate(ctx)
	if err != nil {
		return false, err
	}
	if leftOK {
		rightBool, rightOK, err := n.right.TryBoolEvaluate(ctx)
		if err != nil {
			return false, err
		}
		if rightOK {
			return n.cmp.Bool(leftBool, rightBool), nil
		}
	}

	leftStr, err := n.left.StringEvaluate(ctx)
	if err != nil {
		return false, err
	}
	rightStr, err := n.right.StringEvaluate(ctx)
	if err != nil {
		return false, err
	}
	// Step 1 established that neither side evaluates to empty, so an empty
	// expansion here means the state's emptiness probe broke its soundness
	// contract. In lenient mode the comparison proceeds on the strings as
	// they are.
	if leftStr == "" || rightStr == "" {
		if err := ctx.internal("emptiness probe reported non-empty for a side of %q that expanded to an empty string", n.cmp.Token()); err != nil {
			return false, err
		}
	}
	if err := n.recordConditionedProperties(ctx); err != nil {
		return false, err
	}
	return n.cmp.String(leftStr, rightStr), nil
}

// recordConditionedProperties records, for each side that is a bare property
// reference, the opposite side's expanded value. The context gates the
// update to once per pass regardless of how many times BoolEvaluate
// re-enters this node.
func (n *comparisonNode) recordConditionedProperties(ctx *Context) error {
	table := ctx.State.ConditionedProperties()
	if table == nil {
		return nil
	}
	if !ctx.beginRecord(n) {
		return nil
	}

	if unexpanded, ok := n.left.UnexpandedValue(); ok {
		value, err := n.right.StringEvaluate(ctx)
		if err != nil {
			return err
		}
		RecordConditionedProperty(table, unexpanded, value)
	}
	if unexpanded, ok := n.right.UnexpandedValue(); ok {
		value, err := n.left.StringEvaluate(ctx)
		if err != nil {
			return err
		}
		RecordConditionedProperty(table, unexpanded, value)
	}
	return nil
}

func (n *comparisonNode) TryNumericEvaluate(*Context) (float64, bool, error) {
	return 0, false, nil
}

func (n *comparisonNode) TryBoolEvaluate(ctx *Context) (bool, bool, error) {
	v, err := n.BoolEvaluate(ctx)
	if err != nil {
		return false, false, err
	}
	return v, true, nil
}

func (n *comparisonNode) StringEvaluate(ctx *Context) (string, error) {
	return "", ctx.illFormed("comparison %q cannot be expanded to a string", n.cmp.Token())
}

func (n *comparisonNode) EvaluatesToEmpty(*Context) (bool, error) {
	return false, nil
}

func (n *comparisonNode) UnexpandedValue() (string, bool) {
	return "", false
}
