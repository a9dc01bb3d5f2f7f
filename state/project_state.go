package state

import (
	"strings"

	buildcond "github.com/buildcond/buildcond-go"
)

// ProjectState is the default evaluation state: properties, item lists, and
// per-item metadata held in explicit maps. Property names resolve
// case-insensitively, matching the build language's property semantics.
// Reserved builtin properties (see builtin.go) take precedence over
// user-defined ones.
type ProjectState struct {
	core
	builtins   map[string]string
	properties map[string]string
	items      map[string][]Item
}

// ProjectOption configures a ProjectState.
type ProjectOption func(*ProjectState)

// WithProperty defines a single property.
func WithProperty(name, value string) ProjectOption {
	return func(s *ProjectState) {
		s.properties[strings.ToLower(name)] = value
	}
}

// WithProperties defines a batch of properties.
func WithProperties(properties map[string]string) ProjectOption {
	return func(s *ProjectState) {
		for name, value := range properties {
			s.properties[strings.ToLower(name)] = value
		}
	}
}

// WithItems defines the item list of the given type.
func WithItems(itemType string, items ...Item) ProjectOption {
	return func(s *ProjectState) {
		s.items[strings.ToLower(itemType)] = items
	}
}

// WithConditionedProperties attaches an existing conditioned-properties
// table, typically shared across every condition of one project evaluation.
func WithConditionedProperties(table *buildcond.ConditionedProperties) ProjectOption {
	return func(s *ProjectState) {
		s.conditioned = table
	}
}

// WithoutTracking disables conditioned-properties tracking entirely.
func WithoutTracking() ProjectOption {
	return func(s *ProjectState) {
		s.conditioned = nil
	}
}

// NewProjectState builds a state. Tracking is enabled by default with a
// fresh table; use WithConditionedProperties to share one, or
// WithoutTracking to disable it.
func NewProjectState(options ...ProjectOption) *ProjectState {
	s := &ProjectState{
		builtins:   builtinProperties(),
		properties: make(map[string]string),
		items:      make(map[string][]Item),
	}
	s.core.resolver = s
	s.core.conditioned = buildcond.NewConditionedProperties()
	for _, option := range options {
		option(s)
	}
	return s
}

// Property implements Resolver.
func (s *ProjectState) Property(name string) (string, bool) {
	key := strings.ToLower(name)
	if value, ok := s.builtins[key]; ok {
		return value, true
	}
	value, ok := s.properties[key]
	return value, ok
}

// Items implements Resolver.
func (s *ProjectState) Items(itemType string) []Item {
	return s.items[strings.ToLower(itemType)]
}

// Metadata implements Resolver.
func (s *ProjectState) Metadata(itemType, name string) []string {
	items := s.items[strings.ToLower(itemType)]
	var values []string
	seen := make(map[string]struct{})
	for _, item := range items {
		for key, value := range item.Metadata {
			if !strings.EqualFold(key, name) {
				continue
			}
			if _, dup := seen[value]; !dup {
				seen[value] = struct{}{}
				values = append(values, value)
			}
			break
		}
	}
	return values
}
