package state

import (
	"fmt"
	"regexp"
	"strings"
)

// segment is one piece of reference-bearing text: either a literal run or a
// single $(), @(), or %() reference.
type segment struct {
	literal string
	kind    byte   // '$', '@', or '%'; 0 for a literal run
	owner   string // item type for qualified metadata
	name    string
}

var referenceNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// splitReferences breaks text into literal runs and references. References
// inside quoted condition strings never went through the condition lexer, so
// names are validated here.
func splitReferences(text string) ([]segment, error) {
	var segments []segment
	for len(text) > 0 {
		start := referenceStart(text)
		if start < 0 {
			segments = append(segments, segment{literal: text})
			break
		}
		if start > 0 {
			segments = append(segments, segment{literal: text[:start]})
			text = text[start:]
		}

		end := strings.IndexByte(text, ')')
		if end < 0 {
			return nil, fmt.Errorf("unterminated reference %q", text)
		}
		kind := text[0]
		inner := text[2:end]
		text = text[end+1:]

		seg := segment{kind: kind}
		if kind == '%' {
			owner, name, qualified := strings.Cut(inner, ".")
			if qualified {
				seg.owner, seg.name = owner, name
			} else {
				seg.name = inner
			}
			if seg.owner != "" && !referenceNamePattern.MatchString(seg.owner) {
				return nil, fmt.Errorf("invalid item type in metadata reference %%(%s)", inner)
			}
		} else {
			seg.name = inner
		}
		if !referenceNamePattern.MatchString(seg.name) {
			return nil, fmt.Errorf("invalid reference name %q", inner)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// referenceStart returns the index of the first $(, @( or %( in text, or -1.
func referenceStart(text string) int {
	best := -1
	for _, prefix := range []string{"$(", "@(", "%("} {
		if i := strings.Index(text, prefix); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// expand substitutes every reference in text. Undefined properties and item
// types expand to the empty string; item lists join their includes with
// semicolons; qualified metadata joins its values with semicolons. An
// unqualified metadata reference has no item context at this level and is an
// expansion failure.
func expand(text string, r Resolver) (string, error) {
	if !strings.ContainsAny(text, "$@%") {
		return text, nil
	}
	segments, err := splitReferences(text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, seg := range segments {
		switch seg.kind {
		case 0:
			sb.WriteString(seg.literal)
		case '$':
			value, _ := r.Property(seg.name)
			sb.WriteString(value)
		case '@':
			items := r.Items(seg.name)
			for i, item := range items {
				if i > 0 {
					sb.WriteByte(';')
				}
				sb.WriteString(item.Include)
			}
		case '%':
			if seg.owner == "" {
				return "", fmt.Errorf("metadata reference %%(%s) requires a qualifying item type here", seg.name)
			}
			values := r.Metadata(seg.owner, seg.name)
			sb.WriteString(strings.Join(values, ";"))
		}
	}
	return sb.String(), nil
}

// evaluatesToEmpty reports whether text expands to the empty string, walking
// segments and stopping at the first provably non-empty value. An item list
// is inspected item by item, never joined, so probing a huge list against
// the empty string stays cheap.
func evaluatesToEmpty(text string, r Resolver) (bool, error) {
	if !strings.ContainsAny(text, "$@%") {
		return text == "", nil
	}
	segments, err := splitReferences(text)
	if err != nil {
		return false, err
	}

	for _, seg := range segments {
		switch seg.kind {
		case 0:
			if seg.literal != "" {
				return false, nil
			}
		case '$':
			if value, _ := r.Property(seg.name); value != "" {
				return false, nil
			}
		case '@':
			items := r.Items(seg.name)
			// Two or more items always yield at least one separator.
			if len(items) > 1 {
				return false, nil
			}
			for _, item := range items {
				if item.Include != "" {
					return false, nil
				}
			}
		case '%':
			if seg.owner == "" {
				return false, fmt.Errorf("metadata reference %%(%s) requires a qualifying item type here", seg.name)
			}
			for _, value := range r.Metadata(seg.owner, seg.name) {
				if value != "" {
					return false, nil
				}
			}
		}
	}
	return true, nil
}
