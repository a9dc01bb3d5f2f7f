package buildcond

import (
	"sort"
	"strings"
	"sync"
)

// ConditionedProperties records, per property name, the set of literal values
// the property has been observed compared against during a project's
// evaluation. The table exists for tooling (enumerating valid configuration
// values); it never influences evaluation results.
//
// Entries accumulate monotonically: nothing is removed mid-evaluation.
// Inserts are safe for concurrent use so the table may be shared across
// concurrently evaluating condition trees.
//
// Property names are keyed case-insensitively, matching the build language's
// property semantics; the first-seen casing is preserved for display.
type ConditionedProperties struct {
	mu      sync.Mutex
	entries map[string]*conditionedEntry
}

type conditionedEntry struct {
	name   string
	values map[string]struct{}
}

// NewConditionedProperties returns an empty table.
func NewConditionedProperties() *ConditionedProperties {
	return &ConditionedProperties{entries: make(map[string]*conditionedEntry)}
}

// Add unions value into the set recorded for the named property.
func (c *ConditionedProperties) Add(name, value string) {
	if c == nil {
		return
	}
	key := strings.ToLower(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		entry = &conditionedEntry{name: name, values: make(map[string]struct{})}
		c.entries[key] = entry
	}
	entry.values[value] = struct{}{}
}

// Names returns the recorded property names, sorted.
func (c *ConditionedProperties) Names() []string {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		names = append(names, entry.name)
	}
	sort.Strings(names)
	return names
}

// Values returns the sorted literal values recorded for the named property.
func (c *ConditionedProperties) Values(name string) []string {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[strings.ToLower(name)]
	if !ok {
		return nil
	}
	values := make([]string, 0, len(entry.values))
	for v := range entry.values {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Len returns the number of tracked properties.
func (c *ConditionedProperties) Len() int {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
