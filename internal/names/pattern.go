// Package names generates names from the names document stored next to a
// catalog: weighted patterns plus the component lists they draw from.
package names

import (
	"strings"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/weighted"
)

// Variant tells item name patterns from NPC name patterns
type Variant int

const (
	VariantItem Variant = iota
	VariantNPC
)

func (v Variant) String() string {
	if v == VariantNPC {
		return "npc"
	}
	return "item"
}

// npcFields are the keys whose presence marks an NPC pattern, in the order
// they are checked
var npcFields = []string{"socialClass", "requiresTitle", "excludeTitles", "template"}

// known fields are consumed by DecodePattern and never land in Extra
var knownFields = map[string]bool{
	"template":      true,
	"pattern":       true,
	"rarityWeight":  true,
	"weight":        true,
	"description":   true,
	"example":       true,
	"socialClass":   true,
	"requiresTitle": true,
	"excludeTitles": true,
}

// weightFields are read in order; the first one present wins
var weightFields = []string{"rarityWeight", "weight"}

// decodeWeight reads the first weight field node declares. ok is false when
// it declares none.
func decodeWeight(node *catalog.Node, what string) (weight int, ok bool, err error) {
	for _, field := range weightFields {
		w := node.Get(field)
		if w == nil {
			continue
		}
		f, isNumber := w.Float()
		if !isNumber {
			return 0, false, rcerr.InvalidArgumentf("%s %s must be a number, got %s", what, field, w.Kind())
		}
		return weighted.Normalize(f), true, nil
	}
	return 0, false, nil
}

// Pattern is one weighted name pattern
type Pattern struct {
	Variant     Variant
	Template    string
	Weight      int
	Description string

	// NPC is set only for VariantNPC
	NPC *NPCTraits

	// Extra holds fields this package does not interpret
	Extra map[string]*catalog.Node
}

// NPCTraits narrows where an NPC pattern applies
type NPCTraits struct {
	SocialClass   []string
	RequiresTitle *bool
	ExcludeTitles *bool
}

// AllowsClass reports whether the pattern can name someone of socialClass.
// Item patterns and NPC patterns without a class list allow every class.
func (p *Pattern) AllowsClass(socialClass string) bool {
	if socialClass == "" || p.NPC == nil || len(p.NPC.SocialClass) == 0 {
		return true
	}
	for _, c := range p.NPC.SocialClass {
		if strings.EqualFold(c, socialClass) {
			return true
		}
	}
	return false
}

// DecodePattern reads one entry of a names document's patterns array
func DecodePattern(node *catalog.Node) (*Pattern, error) {
	if node.Kind() != catalog.KindObject {
		return nil, rcerr.InvalidArgumentf("name pattern must be an object, got %s", node.Kind())
	}

	p := &Pattern{Variant: VariantItem, Weight: 1}
	for _, field := range npcFields {
		if node.Has(field) {
			p.Variant = VariantNPC
			break
		}
	}

	var err error
	if p.Template, err = firstString(node, "template", "pattern"); err != nil {
		return nil, err
	}
	if p.Description, err = firstString(node, "description", "example"); err != nil {
		return nil, err
	}
	if w, ok, err := decodeWeight(node, "name pattern"); err != nil {
		return nil, err
	} else if ok {
		p.Weight = w
	}

	if p.Variant == VariantNPC {
		traits := &NPCTraits{}
		if traits.SocialClass, err = stringList(node.Get("socialClass")); err != nil {
			return nil, err
		}
		if traits.RequiresTitle, err = optionalBool(node, "requiresTitle"); err != nil {
			return nil, err
		}
		if traits.ExcludeTitles, err = optionalBool(node, "excludeTitles"); err != nil {
			return nil, err
		}
		p.NPC = traits
	}

	for _, k := range node.Keys() {
		if knownFields[k] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]*catalog.Node)
		}
		p.Extra[k] = node.Get(k)
	}

	return p, nil
}

func firstString(node *catalog.Node, fields ...string) (string, error) {
	for _, field := range fields {
		v := node.Get(field)
		if v.IsNull() {
			continue
		}
		s, ok := v.Str()
		if !ok {
			return "", rcerr.InvalidArgumentf("name pattern %s must be a string, got %s", field, v.Kind())
		}
		return s, nil
	}
	return "", nil
}

func optionalBool(node *catalog.Node, field string) (*bool, error) {
	v := node.Get(field)
	if v.IsNull() {
		return nil, nil
	}
	b, ok := v.Bool()
	if !ok {
		return nil, rcerr.InvalidArgumentf("name pattern %s must be a bool, got %s", field, v.Kind())
	}
	return &b, nil
}

// stringList accepts a string or an array of strings
func stringList(node *catalog.Node) ([]string, error) {
	switch node.Kind() {
	case catalog.KindNull:
		return nil, nil
	case catalog.KindString:
		s, _ := node.Str()
		return []string{s}, nil
	case catalog.KindArray:
		out := make([]string, 0, node.Len())
		for _, item := range node.Items() {
			s, ok := item.Str()
			if !ok {
				return nil, rcerr.InvalidArgumentf("socialClass entries must be strings, got %s", item.Kind())
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, rcerr.InvalidArgumentf("socialClass must be a string or list, got %s", node.Kind())
	}
}
