package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boolStub is a Node returning a fixed boolean and counting evaluations, for
// short-circuit checks.
type boolStub struct {
	value bool
	calls int
}

func (s *boolStub) BoolEvaluate(*Context) (bool, error) {
	s.calls++
	return s.value, nil
}

func (s *boolStub) TryNumericEvaluate(*Context) (float64, bool, error) { return 0, false, nil }

func (s *boolStub) TryBoolEvaluate(ctx *Context) (bool, bool, error) {
	v, err := s.BoolEvaluate(ctx)
	return v, err == nil, err
}

func (s *boolStub) StringEvaluate(*Context) (string, error) { return "", nil }

func (s *boolStub) EvaluatesToEmpty(*Context) (bool, error) { return false, nil }

func (s *boolStub) UnexpandedValue() (string, bool) { return "", false }

func TestAndShortCircuits(t *testing.T) {
	left := &boolStub{value: false}
	right := &boolStub{value: true}
	node := &andNode{left: left, right: right}

	result, err := node.BoolEvaluate(testContext(newFakeState()))
	require.NoError(t, err)
	assert.False(t, result)
	assert.Equal(t, 1, left.calls)
	assert.Zero(t, right.calls)
}

func TestOrShortCircuits(t *testing.T) {
	left := &boolStub{value: true}
	right := &boolStub{value: false}
	node := &orNode{left: left, right: right}

	result, err := node.BoolEvaluate(testContext(newFakeState()))
	require.NoError(t, err)
	assert.True(t, result)
	assert.Equal(t, 1, left.calls)
	assert.Zero(t, right.calls)
}

func TestLogicalTables(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected bool
	}{
		{"true and true", &andNode{left: &boolStub{value: true}, right: &boolStub{value: true}}, true},
		{"true and false", &andNode{left: &boolStub{value: true}, right: &boolStub{value: false}}, false},
		{"false or true", &orNode{left: &boolStub{value: false}, right: &boolStub{value: true}}, true},
		{"false or false", &orNode{left: &boolStub{value: false}, right: &boolStub{value: false}}, false},
		{"not true", &notNode{child: &boolStub{value: true}}, false},
		{"not false", &notNode{child: &boolStub{value: false}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.node.BoolEvaluate(testContext(newFakeState()))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
