package resolver

import (
	"strings"

	"github.com/KirkDiggler/realm-content/internal/catalog"
)

// Kind tells which shape a Result has
type Kind int

const (
	// KindAbsent is an optional reference that matched nothing
	KindAbsent Kind = iota
	// KindPresent is a single resolved node
	KindPresent
	// KindMany is every entry a wildcard matched
	KindMany
)

func (k Kind) String() string {
	switch k {
	case KindPresent:
		return "present"
	case KindMany:
		return "many"
	default:
		return "absent"
	}
}

// Result is the outcome of resolving one reference
type Result struct {
	Kind  Kind
	Node  *catalog.Node
	Nodes []*catalog.Node
	// Reference is the reference text that produced this result
	Reference string
}

func absent(ref string) *Result {
	return &Result{Kind: KindAbsent, Reference: ref}
}

func present(ref string, node *catalog.Node) *Result {
	return &Result{Kind: KindPresent, Node: node, Reference: ref}
}

func many(ref string, nodes []*catalog.Node) *Result {
	return &Result{Kind: KindMany, Nodes: nodes, Reference: ref}
}

// IsAbsent reports whether the result carries no value
func (r *Result) IsAbsent() bool {
	return r == nil || r.Kind == KindAbsent
}

// Text renders the result for generated text. Many-results are joined with
// ", ".
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case KindPresent:
		return r.Node.Text()
	case KindMany:
		parts := make([]string, 0, len(r.Nodes))
		for _, n := range r.Nodes {
			if t := n.Text(); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// Value converts the result to plain Go values for callers outside the
// engine: nil, the node's value, or a slice of them
func (r *Result) Value() any {
	if r == nil {
		return nil
	}
	switch r.Kind {
	case KindPresent:
		return r.Node.Interface()
	case KindMany:
		out := make([]any, len(r.Nodes))
		for i, n := range r.Nodes {
			out[i] = n.Interface()
		}
		return out
	default:
		return nil
	}
}
