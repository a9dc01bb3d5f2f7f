// Package project loads a YAML build description and evaluates its
// conditions: conditioned property groups, item entries, and targets. It is
// the orchestration layer the condc tool drives; one evaluator and one
// conditioned-properties table span a whole project evaluation.
package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	buildcond "github.com/buildcond/buildcond-go"
	"github.com/buildcond/buildcond-go/eval"
	"github.com/buildcond/buildcond-go/state"
)

// Project is a parsed build description.
type Project struct {
	Properties map[string]string `yaml:"properties"`
	Groups     []PropertyGroup   `yaml:"groups"`
	Items      ItemGroups        `yaml:"items"`
	Targets    []Target          `yaml:"targets"`
}

// ItemGroups holds the item lists in declaration order. Entry conditions see
// the items accepted so far, so a later list may reference an earlier one;
// order has to survive decoding.
type ItemGroups []ItemGroup

// ItemGroup is the entry list of one item type.
type ItemGroup struct {
	Type    string
	Entries []Entry
}

func (g *ItemGroups) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: items must be a mapping of item type to entries", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		group := ItemGroup{Type: node.Content[i].Value}
		if err := node.Content[i+1].Decode(&group.Entries); err != nil {
			return err
		}
		*g = append(*g, group)
	}
	return nil
}

// Entries returns the entry list declared for itemType, or nil.
func (g ItemGroups) Entries(itemType string) []Entry {
	for _, group := range g {
		if group.Type == itemType {
			return group.Entries
		}
	}
	return nil
}

// PropertyGroup is a set of properties gated by one condition. Groups apply
// in declaration order; later groups see the properties earlier groups
// contributed.
type PropertyGroup struct {
	Condition  string            `yaml:"condition"`
	Properties map[string]string `yaml:"properties"`

	line, column int
}

func (g *PropertyGroup) UnmarshalYAML(node *yaml.Node) error {
	type plain PropertyGroup
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*g = PropertyGroup(p)
	g.line, g.column = node.Line, node.Column
	return nil
}

// Entry is one item-list entry: either a plain include string or a mapping
// with include, condition, and metadata.
type Entry struct {
	Include   string            `yaml:"include"`
	Condition string            `yaml:"condition"`
	Metadata  map[string]string `yaml:"metadata"`

	line, column int
}

func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*e = Entry{Include: node.Value, line: node.Line, column: node.Column}
		return nil
	}
	type plain Entry
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	e.line, e.column = node.Line, node.Column
	return nil
}

// Target is a named build step gated by one condition.
type Target struct {
	Name      string `yaml:"name"`
	Condition string `yaml:"condition"`

	line, column int
}

func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	type plain Target
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = Target(p)
	t.line, t.column = node.Line, node.Column
	return nil
}

// Load reads and parses a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return Parse(data)
}

// Parse parses project YAML.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	return &p, nil
}

// Result is the outcome of evaluating every condition in a project.
type Result struct {
	// Properties is the effective property set after all property groups.
	Properties map[string]string
	// Items holds the item lists whose entry conditions held.
	Items map[string][]state.Item
	// Targets names the targets whose conditions held, in declaration order.
	Targets []string
	// Conditioned is the table of property/value observations accumulated
	// across every condition of this evaluation, for tooling.
	Conditioned *buildcond.ConditionedProperties
}

// Evaluate runs every condition in the project against states derived from
// it, accumulating one conditioned-properties table. file names the project
// source in diagnostics.
func (p *Project) Evaluate(file string, evaluator *eval.Evaluator) (*Result, error) {
	return p.EvaluateWithConditioned(file, evaluator, buildcond.NewConditionedProperties())
}

// EvaluateWithConditioned is Evaluate with a caller-supplied table, for
// hosts that accumulate observations across several evaluation passes (for
// example, re-evaluating a project every time its file changes).
func (p *Project) EvaluateWithConditioned(file string, evaluator *eval.Evaluator, table *buildcond.ConditionedProperties) (*Result, error) {
	properties := make(map[string]string, len(p.Properties))
	for name, value := range p.Properties {
		properties[name] = value
	}

	newState := func(items map[string][]state.Item) *state.ProjectState {
		options := []state.ProjectOption{
			state.WithProperties(properties),
			state.WithConditionedProperties(table),
		}
		for itemType, list := range items {
			options = append(options, state.WithItems(itemType, list...))
		}
		return state.NewProjectState(options...)
	}

	// Property groups evaluate before any items exist, so item references in
	// a group condition expand empty.
	for i := range p.Groups {
		group := &p.Groups[i]
		st := newState(nil)
		loc := buildcond.Location{File: file, Line: group.line, Column: group.column}
		ok, err := evaluator.Evaluate(group.Condition, st, loc)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		// Property values expand at definition time, against the state the
		// condition was evaluated with.
		for name, value := range group.Properties {
			expanded, err := st.Expand(value)
			if err != nil {
				return nil, buildcond.NewIllFormedConditionError(value, loc, "%v", err)
			}
			properties[name] = expanded
		}
	}

	items := make(map[string][]state.Item)
	for _, group := range p.Items {
		for i := range group.Entries {
			entry := &group.Entries[i]
			st := newState(items)
			loc := buildcond.Location{File: file, Line: entry.line, Column: entry.column}
			ok, err := evaluator.Evaluate(entry.Condition, st, loc)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			include, err := st.Expand(entry.Include)
			if err != nil {
				return nil, buildcond.NewIllFormedConditionError(entry.Include, loc, "%v", err)
			}
			items[group.Type] = append(items[group.Type], state.Item{
				Include:  include,
				Metadata: entry.Metadata,
			})
		}
	}

	var targets []string
	for i := range p.Targets {
		target := &p.Targets[i]
		loc := buildcond.Location{File: file, Line: target.line, Column: target.column}
		ok, err := evaluator.Evaluate(target.Condition, newState(items), loc)
		if err != nil {
			return nil, err
		}
		if ok {
			targets = append(targets, target.Name)
		}
	}

	return &Result{
		Properties:  properties,
		Items:       items,
		Targets:     targets,
		Conditioned: table,
	}, nil
}
