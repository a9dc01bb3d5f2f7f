package state

import (
	"fmt"

	"github.com/tidwall/gjson"

	buildcond "github.com/buildcond/buildcond-go"
)

// JSONState resolves properties and items from a JSON facts document:
//
//	{
//	  "properties": {"Configuration": "Debug"},
//	  "items": {
//	    "Src": [
//	      "plain.go",
//	      {"include": "rich.go", "metadata": {"Lang": "go"}}
//	    ]
//	  }
//	}
//
// Property and item lookups use gjson paths under the "properties" and
// "items" keys. JSON keys are matched case-sensitively, unlike ProjectState.
type JSONState struct {
	core
	doc gjson.Result
}

// JSONOption configures a JSONState.
type JSONOption func(*JSONState)

// WithJSONConditionedProperties attaches a shared conditioned-properties
// table; nil disables tracking.
func WithJSONConditionedProperties(table *buildcond.ConditionedProperties) JSONOption {
	return func(s *JSONState) {
		s.conditioned = table
	}
}

// NewJSONState builds a state over the given document.
func NewJSONState(doc []byte, options ...JSONOption) (*JSONState, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("invalid JSON facts document")
	}
	s := &JSONState{doc: gjson.ParseBytes(doc)}
	s.core.resolver = s
	s.core.conditioned = buildcond.NewConditionedProperties()
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Property implements Resolver.
func (s *JSONState) Property(name string) (string, bool) {
	result := s.doc.Get("properties." + name)
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}

// Items implements Resolver.
func (s *JSONState) Items(itemType string) []Item {
	result := s.doc.Get("items." + itemType)
	if !result.IsArray() {
		return nil
	}

	var items []Item
	result.ForEach(func(_, value gjson.Result) bool {
		items = append(items, jsonItem(value))
		return true
	})
	return items
}

// Metadata implements Resolver.
func (s *JSONState) Metadata(itemType, name string) []string {
	var values []string
	seen := make(map[string]struct{})
	for _, item := range s.Items(itemType) {
		value, ok := item.Metadata[name]
		if !ok {
			continue
		}
		if _, dup := seen[value]; !dup {
			seen[value] = struct{}{}
			values = append(values, value)
		}
	}
	return values
}

func jsonItem(value gjson.Result) Item {
	if value.IsObject() {
		item := Item{Include: value.Get("include").String()}
		metadata := value.Get("metadata")
		if metadata.IsObject() {
			item.Metadata = make(map[string]string)
			metadata.ForEach(func(key, v gjson.Result) bool {
				item.Metadata[key.String()] = v.String()
				return true
			})
		}
		return item
	}
	return Item{Include: value.String()}
}
