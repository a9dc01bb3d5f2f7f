package buildcond

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/buildcond/buildcond-go/ast"
)

// conditionParser is the participle parser for condition expressions.
var conditionParser = participle.MustBuild[ast.Condition](
	participle.Lexer(ast.Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(3),
)

// ParseCondition parses a condition string into its grammar tree. Callers
// that need a located, user-facing diagnostic should wrap the returned error
// with NewIllFormedConditionError; the eval package's Evaluator does this.
func ParseCondition(condition string) (*ast.Condition, error) {
	parsed, err := conditionParser.ParseString("", condition)
	if err != nil {
		return nil, fmt.Errorf("failed to parse condition: %w", err)
	}
	return parsed, nil
}
