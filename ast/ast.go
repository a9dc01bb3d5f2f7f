// Package ast holds the grammar tree a condition string parses into.
// The tree is a faithful syntactic record; package eval compiles it into
// evaluatable expression nodes.
package ast

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Condition is the root of a parsed condition expression.
type Condition struct {
	Pos  lexer.Position
	Expr *OrExpr `parser:"@@"`
}

// OrExpr represents one or more and-expressions joined by "or".
type OrExpr struct {
	Pos   lexer.Position
	Left  *AndExpr   `parser:"@@"`
	Right []*AndExpr `parser:"(OrOp @@)*"`
}

// AndExpr represents one or more not-expressions joined by "and".
type AndExpr struct {
	Pos   lexer.Position
	Left  *NotExpr   `parser:"@@"`
	Right []*NotExpr `parser:"(AndOp @@)*"`
}

// NotExpr is an optionally negated comparison.
type NotExpr struct {
	Pos     lexer.Position
	Negated *NotExpr    `parser:"Not @@"`
	Cmp     *Comparison `parser:"| @@"`
}

// Comparison is a single operand or a binary comparison of two operands.
type Comparison struct {
	Pos   lexer.Position
	Left  *Operand `parser:"@@"`
	Op    string   `parser:"(@Operator"`
	Right *Operand `parser:"@@)?"`
}

// Operand is a leaf value or a parenthesized sub-expression.
type Operand struct {
	Pos      lexer.Position
	Sub      *OrExpr   `parser:"'(' @@ ')'"`
	Str      *string   `parser:"| @String"`
	Number   *string   `parser:"| @Number"`
	Property *string   `parser:"| @Property"`
	ItemList *string   `parser:"| @ItemList"`
	Metadata *string   `parser:"| @Metadata"`
	Call     *FuncCall `parser:"| @@"`
	Bare     *string   `parser:"| @Ident"`
}

// FuncCall is a builtin function invocation such as Exists('dir').
type FuncCall struct {
	Pos  lexer.Position
	Name string     `parser:"@Ident '('"`
	Args []*Operand `parser:"(@@ (',' @@)*)? ')'"`
}

// Unquote strips the single quotes from a String token's raw text.
func Unquote(raw string) string {
	if len(raw) >= 2 && strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") {
		return raw[1 : len(raw)-1]
	}
	return raw
}
