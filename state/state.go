// Package state provides evaluation-state implementations for condition
// evaluation: expansion of property, item, and metadata references backed by
// explicit maps (ProjectState) or by a JSON facts document (JSONState).
package state

import (
	buildcond "github.com/buildcond/buildcond-go"
)

// Item is one entry of a named item list, optionally carrying metadata.
type Item struct {
	Include  string
	Metadata map[string]string
}

// Resolver supplies raw property, item, and metadata values to the
// expansion engine. Implementations decide storage and case rules;
// ProjectState resolves property names case-insensitively.
type Resolver interface {
	// Property returns the value of the named property. A missing property
	// reports false and expands to the empty string.
	Property(name string) (string, bool)

	// Items returns the item list of the given type, in declaration order.
	Items(itemType string) []Item

	// Metadata returns the distinct values of the named metadata across the
	// items of the given type, in item order, skipping items without that
	// metadata.
	Metadata(itemType, name string) []string
}

// core implements the buildcond.State capability surface on top of a
// Resolver. Concrete states embed it.
type core struct {
	resolver    Resolver
	conditioned *buildcond.ConditionedProperties
}

func (c *core) Expand(unexpanded string) (string, error) {
	return expand(unexpanded, c.resolver)
}

func (c *core) EvaluatesToEmpty(unexpanded string) (bool, error) {
	return evaluatesToEmpty(unexpanded, c.resolver)
}

func (c *core) TryNumeric(expanded string) (float64, bool) {
	return buildcond.NumericValue(expanded)
}

func (c *core) TryBool(expanded string) (bool, bool) {
	return buildcond.BoolValue(expanded)
}

func (c *core) ConditionedProperties() *buildcond.ConditionedProperties {
	return c.conditioned
}
