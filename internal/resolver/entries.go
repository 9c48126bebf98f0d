package resolver

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/weighted"
)

const (
	fieldItems      = "items"
	fieldMetadata   = "metadata"
	fieldComponents = "components"
	groupSuffix     = "_types"
)

// findCategory locates a category inside a document: first as a group of a
// *_types field, then as a top-level field, then under "components"
func findCategory(doc *catalog.Node, category string) *catalog.Node {
	for _, key := range doc.Keys() {
		if key == fieldMetadata || !strings.HasSuffix(key, groupSuffix) {
			continue
		}
		if group := doc.Get(key).GetFold(category); group != nil {
			return group
		}
	}
	if node := doc.GetFold(category); node != nil {
		return node
	}
	return doc.Get(fieldComponents).GetFold(category)
}

// collectEntries gathers the entry objects below node. Arrays contribute
// their object elements; objects contribute their items array and recurse
// into *_types fields and sub-groups that carry items.
func collectEntries(node *catalog.Node) []*catalog.Node {
	var out []*catalog.Node
	switch node.Kind() {
	case catalog.KindArray:
		for _, item := range node.Items() {
			if item.Kind() == catalog.KindObject {
				out = append(out, item)
			}
		}
	case catalog.KindObject:
		if items := node.Get(fieldItems); items.Kind() == catalog.KindArray {
			out = append(out, collectEntries(items)...)
		}
		for _, key := range node.Keys() {
			if key == fieldItems || key == fieldMetadata {
				continue
			}
			child := node.Get(key)
			if child.Kind() != catalog.KindObject {
				continue
			}
			if strings.HasSuffix(key, groupSuffix) || child.Get(fieldItems).Kind() == catalog.KindArray {
				out = append(out, collectEntries(child)...)
			}
		}
	}
	return out
}

// label is the name an entry is known by
func label(entry *catalog.Node) string {
	for _, field := range []string{"slug", "name", "id"} {
		if s, ok := entry.Get(field).Str(); ok && s != "" {
			return s
		}
	}
	return ""
}

func matchesName(entry *catalog.Node, name string) bool {
	for _, field := range []string{"slug", "name", "id"} {
		if s, ok := entry.Get(field).Str(); ok && strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// supportsContext reports whether any trait key declares ctx, either as a
// key of an object or as a string element of an array
func (s *service) supportsContext(entry *catalog.Node, ctx string) bool {
	for _, key := range s.contextKeys {
		traits := entry.Get(key)
		switch traits.Kind() {
		case catalog.KindObject:
			if traits.GetFold(ctx) != nil {
				return true
			}
		case catalog.KindArray:
			for _, item := range traits.Items() {
				if v, ok := item.Str(); ok && strings.EqualFold(v, ctx) {
					return true
				}
			}
		case catalog.KindString:
			if v, _ := traits.Str(); strings.EqualFold(v, ctx) {
				return true
			}
		}
	}
	return false
}

// weightOf reads the first configured weight field; absent means 1
func (s *service) weightOf(entry *catalog.Node) int {
	for _, field := range s.weightFields {
		node := entry.Get(field)
		if f, ok := node.Float(); ok {
			return weighted.Normalize(f)
		}
		if str, ok := node.Str(); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
				return weighted.Normalize(f)
			}
		}
	}
	return 1
}

// descend applies a property chain, returning the failing segment when a
// step is missing
func descend(node *catalog.Node, props []string) (*catalog.Node, string) {
	current := node
	for _, prop := range props {
		next := current.Get(prop)
		if next == nil {
			next = current.GetFold(prop)
		}
		if next == nil && current.Kind() == catalog.KindArray {
			if i, err := strconv.Atoi(prop); err == nil && i >= 0 && i < current.Len() {
				next = current.Items()[i]
			}
		}
		if next == nil || next.IsNull() {
			return nil, prop
		}
		current = next
	}
	return current, ""
}
