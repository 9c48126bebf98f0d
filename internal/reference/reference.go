// Package reference parses the compact locator syntax content uses to point
// into other documents:
//
//	@<domain>/<segment>(/<segment>)*:<item|*>[<filters>][?][.<prop>]*
//
// The last segment before ':' is the category; earlier segments form the
// document path. Inside patterns a shorthand form is also accepted:
//
//	@<domain>[/<context>][?]
//
// which asks for one weighted entry from the whole domain that supports the
// given context.
package reference

import (
	"strings"
)

// Op is a filter comparison
type Op string

const (
	OpExists Op = ""
	OpEq     Op = "="
	OpNe     Op = "!="
	OpLt     Op = "<"
	OpLe     Op = "<="
	OpGt     Op = ">"
	OpGe     Op = ">="
)

// Filter restricts candidate entries. Property is a dotted path into the
// entry; OpExists only checks that the property is present.
type Filter struct {
	Property []string
	Op       Op
	Value    string
}

func (f Filter) String() string {
	prop := strings.Join(f.Property, ".")
	if f.Op == OpExists {
		return prop
	}
	return prop + string(f.Op) + f.Value
}

// Expression is a parsed reference
type Expression struct {
	// Raw is the text as given, without outer whitespace
	Raw    string
	Domain string
	// Path holds the document path segments before the category. It may be
	// empty, as in @enemies/humanoid:*.
	Path     []string
	Category string
	// Item is empty when Wildcard is set
	Item       string
	Wildcard   bool
	Optional   bool
	Filters    []Filter
	Properties []string

	// Shorthand marks the @domain/context form; Context is empty when the
	// caller's scope applies
	Shorthand bool
	Context   string
}

// PathSegments returns the path followed by the category
func (e *Expression) PathSegments() []string {
	segments := make([]string, 0, len(e.Path)+1)
	segments = append(segments, e.Path...)
	if e.Category != "" {
		segments = append(segments, e.Category)
	}
	return segments
}

// String renders the expression in canonical form
func (e *Expression) String() string {
	var b strings.Builder
	b.WriteByte('@')
	b.WriteString(e.Domain)

	if e.Shorthand {
		if e.Context != "" {
			b.WriteByte('/')
			b.WriteString(e.Context)
		}
		if e.Optional {
			b.WriteByte('?')
		}
		return b.String()
	}

	for _, seg := range e.PathSegments() {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	b.WriteByte(':')
	if e.Wildcard {
		b.WriteByte('*')
	} else {
		b.WriteString(e.Item)
	}
	if len(e.Filters) > 0 {
		parts := make([]string, len(e.Filters))
		for i, f := range e.Filters {
			parts[i] = f.String()
		}
		b.WriteByte('[')
		b.WriteString(strings.Join(parts, "&"))
		b.WriteByte(']')
	}
	if e.Optional {
		b.WriteByte('?')
	}
	for _, p := range e.Properties {
		b.WriteByte('.')
		b.WriteString(p)
	}
	return b.String()
}

// IsReference reports whether text looks like a reference at all, which is
// whether it starts with '@' once trimmed
func IsReference(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "@")
}
