package ast

import "github.com/alecthomas/participle/v2/lexer"

// Lexer defines the token rules for condition expressions. Order matters:
// the logical keywords must come before Ident, and the two-character
// comparison operators before Not.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `'[^']*'`},
	{Name: "AndOp", Pattern: `(?i)\band\b`},
	{Name: "OrOp", Pattern: `(?i)\bor\b`},
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|[-+]?\d+(\.\d+)?([eE][-+]?\d+)?`},
	{Name: "Property", Pattern: `\$\([A-Za-z_][A-Za-z0-9_]*\)`},
	{Name: "ItemList", Pattern: `@\([A-Za-z_][A-Za-z0-9_]*\)`},
	{Name: "Metadata", Pattern: `%\([A-Za-z_][A-Za-z0-9_.]*\)`},
	{Name: "Operator", Pattern: `==|!=|<=|>=|<|>`},
	{Name: "Not", Pattern: `!`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.]*`},
	{Name: "Punct", Pattern: `[(),]`},
})
