package names

import (
	"github.com/KirkDiggler/realm-content/internal/catalog"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/pattern"
	"github.com/KirkDiggler/realm-content/internal/weighted"
)

// Document is a decoded names document
type Document struct {
	Patterns   []*Pattern
	Components pattern.Components
}

// DecodeDocument reads the patterns array and components map of a names
// document. Components are plain strings (weight 1) or objects carrying
// value (or name) and weight.
func DecodeDocument(node *catalog.Node) (*Document, error) {
	if node.Kind() != catalog.KindObject {
		return nil, rcerr.InvalidArgumentf("names document must be an object, got %s", node.Kind())
	}

	doc := &Document{Components: make(pattern.Components)}

	patterns := node.Get("patterns")
	if !patterns.IsNull() && patterns.Kind() != catalog.KindArray {
		return nil, rcerr.InvalidArgumentf("patterns must be a list, got %s", patterns.Kind())
	}
	for i, item := range patterns.Items() {
		p, err := DecodePattern(item)
		if err != nil {
			return nil, rcerr.Wrapf(err, "patterns[%d]", i)
		}
		doc.Patterns = append(doc.Patterns, p)
	}

	components := node.Get("components")
	if !components.IsNull() && components.Kind() != catalog.KindObject {
		return nil, rcerr.InvalidArgumentf("components must be an object, got %s", components.Kind())
	}
	for _, key := range components.Keys() {
		group := components.Get(key)
		if group.Kind() != catalog.KindArray {
			return nil, rcerr.InvalidArgumentf("components.%s must be a list, got %s", key, group.Kind())
		}
		candidates := make([]weighted.Candidate[string], 0, group.Len())
		for i, item := range group.Items() {
			c, err := decodeComponent(item)
			if err != nil {
				return nil, rcerr.Wrapf(err, "components.%s[%d]", key, i)
			}
			candidates = append(candidates, c)
		}
		doc.Components[key] = candidates
	}

	return doc, nil
}

func decodeComponent(node *catalog.Node) (weighted.Candidate[string], error) {
	if s, ok := node.Str(); ok {
		return weighted.Candidate[string]{Value: s, Weight: 1}, nil
	}
	if node.Kind() != catalog.KindObject {
		return weighted.Candidate[string]{}, rcerr.InvalidArgumentf("component must be a string or object, got %s", node.Kind())
	}

	c := weighted.Candidate[string]{Weight: 1}
	value := node.Get("value")
	if value.IsNull() {
		value = node.Get("name")
	}
	s, ok := value.Str()
	if !ok {
		return c, rcerr.InvalidArgument("component needs a string value or name")
	}
	c.Value = s

	w, ok, err := decodeWeight(node, "component")
	if err != nil {
		return c, err
	}
	if ok {
		c.Weight = w
	}
	return c, nil
}
