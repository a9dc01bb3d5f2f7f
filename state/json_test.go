package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const factsDoc = `{
	"properties": {
		"Configuration": "Release",
		"Empty": ""
	},
	"items": {
		"Src": [
			"plain.go",
			{"include": "rich.go", "metadata": {"Lang": "go"}},
			{"include": "native.rs", "metadata": {"Lang": "rust"}}
		]
	}
}`

func TestJSONStateRejectsInvalidDocument(t *testing.T) {
	_, err := NewJSONState([]byte("{not json"))
	assert.Error(t, err)
}

func TestJSONStateResolution(t *testing.T) {
	state, err := NewJSONState([]byte(factsDoc))
	require.NoError(t, err)

	value, ok := state.Property("Configuration")
	assert.True(t, ok)
	assert.Equal(t, "Release", value)

	value, ok = state.Property("Empty")
	assert.True(t, ok)
	assert.Empty(t, value)

	_, ok = state.Property("Missing")
	assert.False(t, ok)

	items := state.Items("Src")
	require.Len(t, items, 3)
	assert.Equal(t, "plain.go", items[0].Include)
	assert.Equal(t, "rich.go", items[1].Include)
	assert.Equal(t, map[string]string{"Lang": "rust"}, items[2].Metadata)

	assert.Nil(t, state.Items("Missing"))
	assert.Equal(t, []string{"go", "rust"}, state.Metadata("Src", "Lang"))
}

func TestJSONStateExpansion(t *testing.T) {
	state, err := NewJSONState([]byte(factsDoc))
	require.NoError(t, err)

	expanded, err := state.Expand("out/$(Configuration)")
	require.NoError(t, err)
	assert.Equal(t, "out/Release", expanded)

	expanded, err = state.Expand("@(Src)")
	require.NoError(t, err)
	assert.Equal(t, "plain.go;rich.go;native.rs", expanded)

	empty, err := state.EvaluatesToEmpty("$(Empty)")
	require.NoError(t, err)
	assert.True(t, empty)
}
