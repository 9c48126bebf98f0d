package dnd5e

import (
	"strings"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
)

// groupedDocument collects entries as <types field>.<group>.items
type groupedDocument struct {
	fields map[string]map[string][]any
	count  int
}

func newGroupedDocument(fields ...string) *groupedDocument {
	doc := &groupedDocument{fields: make(map[string]map[string][]any, len(fields))}
	for _, f := range fields {
		doc.fields[f] = make(map[string][]any)
	}
	return doc
}

func (d *groupedDocument) add(field, group string, entry map[string]any) {
	if group == "" {
		group = "other"
	}
	d.fields[field][group] = append(d.fields[field][group], entry)
	d.count++
}

func (d *groupedDocument) node() (*catalog.Node, error) {
	out := map[string]any{
		"metadata": map[string]any{"source": "dnd5e-srd", "entries": d.count},
	}
	for field, groups := range d.fields {
		g := make(map[string]any, len(groups))
		for name, items := range groups {
			g[name] = map[string]any{"items": items}
		}
		out[field] = g
	}
	return catalog.FromValue(out)
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

func weaponGroup(w *apiEntities.Weapon) string {
	if w.CategoryRange != "" {
		return slug(w.CategoryRange)
	}
	return slug(w.WeaponCategory)
}

func baseEntry(key, name string, weight float64, cost *apiEntities.Cost, traits ...string) map[string]any {
	entry := map[string]any{
		"slug":   key,
		"name":   name,
		"weightLb": weight,
	}
	if cost != nil {
		entry["cost"] = map[string]any{
			"quantity": float64(cost.Quantity),
			"unit":     string(cost.Unit),
		}
	}
	t := make(map[string]any, len(traits))
	for _, trait := range traits {
		if trait != "" {
			t[trait] = map[string]any{}
		}
	}
	entry["itemTypeTraits"] = t
	return entry
}

func weaponEntry(w *apiEntities.Weapon) map[string]any {
	entry := baseEntry(w.Key, w.Name, float64(w.Weight), w.Cost, "weapon", slug(w.WeaponRange))
	entry["category"] = strings.ToLower(w.WeaponCategory)
	if d := damageEntry(w.Damage); d != nil {
		entry["damage"] = d
	}
	if d := damageEntry(w.TwoHandedDamage); d != nil {
		entry["twoHandedDamage"] = d
	}
	props := make([]string, 0, len(w.Properties))
	for _, p := range w.Properties {
		if p != nil {
			props = append(props, p.Name)
		}
	}
	entry["properties"] = props
	return entry
}

func damageEntry(d *apiEntities.Damage) map[string]any {
	if d == nil || d.DamageDice == "" {
		return nil
	}
	out := map[string]any{"dice": d.DamageDice}
	if d.DamageType != nil {
		out["type"] = d.DamageType.Name
	}
	return out
}

func armorEntry(a *apiEntities.Armor) map[string]any {
	entry := baseEntry(a.Key, a.Name, float64(a.Weight), a.Cost, "armor", slug(string(a.ArmorCategory)))
	entry["category"] = strings.ToLower(string(a.ArmorCategory))
	entry["stealthDisadvantage"] = a.StealthDisadvantage
	if ac := a.ArmorClass; ac != nil {
		entry["armorClass"] = map[string]any{
			"base":     float64(ac.Base),
			"dexBonus": ac.DexBonus,
		}
	}
	return entry
}

func gearEntry(e *apiEntities.Equipment) map[string]any {
	return baseEntry(e.Key, e.Name, float64(e.Weight), e.Cost, "gear")
}

func monsterEntry(m *apiEntities.Monster) map[string]any {
	creatureType := slug(string(m.Type))
	entry := map[string]any{
		"slug":            m.Key,
		"name":            m.Name,
		"type":            creatureType,
		"hitPoints":       float64(m.HitPoints),
		"challengeRating": float64(m.ChallengeRating),
		"contexts":        []string{creatureType},
	}
	actions := make([]string, 0, len(m.MonsterActions))
	for _, a := range m.MonsterActions {
		if a != nil {
			actions = append(actions, a.Name)
		}
	}
	entry["actions"] = actions
	return entry
}
