package eval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	buildcond "github.com/buildcond/buildcond-go"
)

// fakeState gives tests full control over expansion and the emptiness probe,
// and records which texts were expanded.
type fakeState struct {
	values        map[string]string // unexpanded -> expanded; absent literals expand to themselves
	failures      map[string]bool   // unexpanded -> expansion fails
	emptyOverride map[string]bool   // unexpanded -> forced probe answer
	table         *buildcond.ConditionedProperties
	expandedTexts []string
}

func newFakeState() *fakeState {
	return &fakeState{
		values:        make(map[string]string),
		failures:      make(map[string]bool),
		emptyOverride: make(map[string]bool),
		table:         buildcond.NewConditionedProperties(),
	}
}

func (f *fakeState) Expand(unexpanded string) (string, error) {
	f.expandedTexts = append(f.expandedTexts, unexpanded)
	if f.failures[unexpanded] {
		return "", fmt.Errorf("no expansion for %s", unexpanded)
	}
	if v, ok := f.values[unexpanded]; ok {
		return v, nil
	}
	return unexpanded, nil
}

func (f *fakeState) EvaluatesToEmpty(unexpanded string) (bool, error) {
	if v, ok := f.emptyOverride[unexpanded]; ok {
		return v, nil
	}
	if f.failures[unexpanded] {
		return false, fmt.Errorf("no expansion for %s", unexpanded)
	}
	if v, ok := f.values[unexpanded]; ok {
		return v == "", nil
	}
	return unexpanded == "", nil
}

func (f *fakeState) TryNumeric(expanded string) (float64, bool) {
	return buildcond.NumericValue(expanded)
}

func (f *fakeState) TryBool(expanded string) (bool, bool) {
	return buildcond.BoolValue(expanded)
}

func (f *fakeState) ConditionedProperties() *buildcond.ConditionedProperties {
	return f.table
}

func testContext(state buildcond.State) *Context {
	return NewContext(state, "<test condition>", buildcond.Location{File: "test.yaml", Line: 1, Column: 1})
}

func compare(op string, left, right Node) *comparisonNode {
	return &comparisonNode{cmp: comparers[op], left: left, right: right}
}

func TestComparisonCoercionOrder(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		left     string
		right    string
		expected bool
	}{
		// Emptiness short-circuit.
		{name: "empty equals empty", op: "==", left: "", right: "", expected: true},
		{name: "empty not-equals non-empty", op: "!=", left: "", right: "x", expected: true},
		{name: "empty equals non-empty", op: "==", left: "", right: "x", expected: false},

		// Numeric priority: the strings differ, the numbers do not.
		{name: "decimal forms compare numerically", op: "==", left: "5", right: "5.0", expected: true},
		{name: "hex compares numerically", op: "==", left: "0x10", right: "16", expected: true},
		{name: "numeric less-than", op: "<", left: "2", right: "10", expected: true},
		{name: "string ordering would disagree", op: ">", left: "10", right: "9", expected: true},

		// Boolean path after numeric fails.
		{name: "booleans compare as booleans", op: "==", left: "TRUE", right: "true", expected: true},
		{name: "boolean inequality", op: "!=", left: "true", right: "false", expected: true},
		{name: "false orders below true", op: "<", left: "false", right: "true", expected: true},

		// String fallback: 'on' is not a canonical boolean token.
		{name: "true vs on falls to strings", op: "==", left: "true", right: "on", expected: false},
		{name: "string comparison is case-insensitive", op: "==", left: "Debug", right: "DEBUG", expected: true},
		{name: "string ordering", op: "<", left: "alpha", right: "beta", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := compare(tt.op, newStringNode(tt.left), newStringNode(tt.right))
			result, err := node.BoolEvaluate(testContext(newFakeState()))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestComparisonEmptyPathSkipsExpansion(t *testing.T) {
	state := newFakeState()
	state.values["@(Huge)"] = "a;b;c"
	state.emptyOverride["@(Huge)"] = false

	node := compare("!=", newStringNode("@(Huge)"), newStringNode(""))
	result, err := node.BoolEvaluate(testContext(state))
	require.NoError(t, err)
	assert.True(t, result)

	// The item list side must never be fully expanded just to learn it is
	// non-empty.
	assert.NotContains(t, state.expandedTexts, "@(Huge)")
}

func TestComparisonMissingChild(t *testing.T) {
	state := newFakeState()

	for _, node := range []*comparisonNode{
		compare("==", newStringNode("$(X)"), nil),
		compare("==", nil, newStringNode("$(X)")),
	} {
		_, err := node.BoolEvaluate(testContext(state))

		var illFormed *buildcond.IllFormedConditionError
		require.ErrorAs(t, err, &illFormed)
		assert.Equal(t, "<test condition>", illFormed.Condition)
		// The diagnostic fires before any coercion is attempted.
		assert.Empty(t, state.expandedTexts)
	}
}

func TestComparisonExpansionFailure(t *testing.T) {
	state := newFakeState()
	state.emptyOverride["$(Bad)"] = false
	state.failures["$(Bad)"] = true

	node := compare("==", newStringNode("$(Bad)"), newStringNode("x"))
	_, err := node.BoolEvaluate(testContext(state))

	var illFormed *buildcond.IllFormedConditionError
	require.ErrorAs(t, err, &illFormed)
	assert.Contains(t, illFormed.Message, "$(Bad)")
}

func TestComparisonProbeSoundnessViolation(t *testing.T) {
	// The probe claims non-empty while the expansion is empty.
	lying := func() *fakeState {
		state := newFakeState()
		state.emptyOverride["$(Lies)"] = false
		state.values["$(Lies)"] = ""
		return state
	}

	node := compare("==", newStringNode("$(Lies)"), newStringNode("x"))

	_, err := node.BoolEvaluate(testContext(lying()))
	var internal *buildcond.InternalError
	require.ErrorAs(t, err, &internal)

	// Lenient mode limps forward and compares the strings as they are.
	evaluator := NewEvaluator(WithLenientInternalErrors())
	ctx := evaluator.NewContext(lying(), "<test condition>", buildcond.Location{})
	result, err := node.BoolEvaluate(ctx)
	require.NoError(t, err)
	assert.False(t, result)
}

func TestConditionedPropertiesRecordedOncePerPass(t *testing.T) {
	state := newFakeState()
	state.values["$(Config)"] = "Debug"
	state.values["$(Flavor)"] = "Debug"

	node := compare("==", newStringNode("$(Config)"), newStringNode("$(Flavor)"))
	ctx := testContext(state)

	_, err := node.BoolEvaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Debug"}, state.table.Values("Config"))

	// A re-entrant evaluation in the same pass records nothing new, even
	// though the opposite side now expands differently.
	state.values["$(Flavor)"] = "Release"
	_, err = node.BoolEvaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Debug"}, state.table.Values("Config"))

	// A fresh pass records again: one entry per pass, two across two passes.
	ctx.ResetPass()
	_, err = node.BoolEvaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Debug", "Release"}, state.table.Values("Config"))
}

func TestConditionedPropertiesSkippedOnTypedPaths(t *testing.T) {
	state := newFakeState()
	state.values["$(Level)"] = "5"

	// Numeric comparison: only unexpanded textual comparisons are tracked.
	node := compare("==", newStringNode("$(Level)"), newStringNode("5.0"))
	result, err := node.BoolEvaluate(testContext(state))
	require.NoError(t, err)
	assert.True(t, result)
	assert.Zero(t, state.table.Len())

	// Boolean comparison likewise.
	state.values["$(Enabled)"] = "true"
	node = compare("==", newStringNode("$(Enabled)"), newStringNode("true"))
	result, err = node.BoolEvaluate(testContext(state))
	require.NoError(t, err)
	assert.True(t, result)
	assert.Zero(t, state.table.Len())
}

func TestConditionedPropertiesOnEmptyPath(t *testing.T) {
	state := newFakeState()
	state.values["$(Config)"] = ""

	node := compare("==", newStringNode("$(Config)"), newStringNode(""))
	result, err := node.BoolEvaluate(testContext(state))
	require.NoError(t, err)
	assert.True(t, result)
	assert.Equal(t, []string{""}, state.table.Values("Config"))
}

func TestConditionedPropertiesNilTableDisablesTracking(t *testing.T) {
	state := newFakeState()
	state.values["$(Config)"] = "Debug"
	state.table = nil

	node := compare("==", newStringNode("$(Config)"), newStringNode("Debug"))
	result, err := node.BoolEvaluate(testContext(state))
	require.NoError(t, err)
	assert.True(t, result)
}

func TestRecordConditionedProperty(t *testing.T) {
	table := buildcond.NewConditionedProperties()

	RecordConditionedProperty(table, "$(Config)", "Debug")

	// None of these shapes key the table: a plain literal, compound text,
	// an empty reference name, and a disabled (nil) table.
	RecordConditionedProperty(table, "Debug", "ignored")
	RecordConditionedProperty(table, "$(A)$(B)", "ignored")
	RecordConditionedProperty(table, "$()", "ignored")
	RecordConditionedProperty(nil, "$(Config)", "ignored")

	assert.Equal(t, []string{"Config"}, table.Names())
	assert.Equal(t, []string{"Debug"}, table.Values("Config"))
}
