package catalog_test

import (
	"testing"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weaponsJSON = `{
	"metadata": {"version": "4.1"},
	"weapon_types": {
		"swords": {
			"items": [
				{"slug": "iron-longsword", "name": "Iron Longsword", "damage": 12, "weight": 3.5},
				{"slug": "short-sword", "name": "Short Sword", "damage": 6, "tags": ["light", "finesse"]}
			]
		},
		"axes": {"items": []}
	}
}`

func TestParseJSON_KeepsKeyOrder(t *testing.T) {
	doc, err := catalog.ParseJSON([]byte(weaponsJSON))
	require.NoError(t, err)

	assert.Equal(t, catalog.KindObject, doc.Kind())
	assert.Equal(t, []string{"metadata", "weapon_types"}, doc.Keys())
	assert.Equal(t, []string{"swords", "axes"}, doc.Get("weapon_types").Keys())

	swords := doc.Get("weapon_types").Get("swords").Get("items").Items()
	require.Len(t, swords, 2)

	damage, ok := swords[0].Get("damage").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(12), damage)

	_, ok = swords[0].Get("weight").Int()
	assert.False(t, ok, "3.5 is not an integer")
	weight, ok := swords[0].Get("weight").Float()
	assert.True(t, ok)
	assert.Equal(t, 3.5, weight)
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := catalog.ParseJSON([]byte(`{"a": [1, 2}`))
	assert.Error(t, err)

	_, err = catalog.ParseJSON([]byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)
}

func TestParseYAML(t *testing.T) {
	doc, err := catalog.ParseYAML([]byte(`
material_types:
  metals:
    items:
      - name: Iron
        rarityWeight: 50
        itemTypeTraits:
          weapon: {durability: 10}
      - name: Mithril
        rarityWeight: 2.5
        enchantable: true
        note: ~
`))
	require.NoError(t, err)

	items := doc.Get("material_types").Get("metals").Get("items").Items()
	require.Len(t, items, 2)

	assert.Equal(t, "Iron", items[0].Text())
	w, ok := items[0].Get("rarityWeight").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(50), w)
	assert.True(t, items[0].Get("itemTypeTraits").Has("weapon"))

	f, ok := items[1].Get("rarityWeight").Float()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)
	b, ok := items[1].Get("enchantable").Bool()
	assert.True(t, ok)
	assert.True(t, b)
	assert.True(t, items[1].Has("note"))
	assert.True(t, items[1].Get("note").IsNull())
}

func TestParseYAML_AliasSharesAnchor(t *testing.T) {
	doc, err := catalog.ParseYAML([]byte(`
base: &steel {name: Steel, rarityWeight: 30}
weapon_types:
  swords:
    items: [*steel, *steel]
`))
	require.NoError(t, err)

	items := doc.Get("weapon_types").Get("swords").Get("items").Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Steel", items[0].Text())
	assert.Same(t, doc.Get("base"), items[1])
}

func TestParseYAML_RejectsAliasExpansionBomb(t *testing.T) {
	_, err := catalog.ParseYAML([]byte(`
a: &a ["lol","lol","lol","lol","lol","lol","lol","lol","lol"]
b: &b [*a,*a,*a,*a,*a,*a,*a,*a,*a]
c: &c [*b,*b,*b,*b,*b,*b,*b,*b,*b]
d: &d [*c,*c,*c,*c,*c,*c,*c,*c,*c]
e: &e [*d,*d,*d,*d,*d,*d,*d,*d,*d]
f: &f [*e,*e,*e,*e,*e,*e,*e,*e,*e]
g: &g [*f,*f,*f,*f,*f,*f,*f,*f,*f]
h: &h [*g,*g,*g,*g,*g,*g,*g,*g,*g]
i: &i [*h,*h,*h,*h,*h,*h,*h,*h,*h]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expands to more than")
}

func TestNode_Text(t *testing.T) {
	doc, err := catalog.ParseJSON([]byte(`{
		"named": {"slug": "iron", "name": "Iron"},
		"slugOnly": {"slug": "iron"},
		"bare": {"hardness": 4},
		"num": 12.50,
		"flag": false,
		"list": [1, "two"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Iron", doc.Get("named").Text())
	assert.Equal(t, "iron", doc.Get("slugOnly").Text())
	assert.Equal(t, `{"hardness":4}`, doc.Get("bare").Text())
	assert.Equal(t, "12.50", doc.Get("num").Text())
	assert.Equal(t, "false", doc.Get("flag").Text())
	assert.Equal(t, `[1,"two"]`, doc.Get("list").Text())
	assert.Equal(t, "", doc.Get("missing").Text())
}

func TestNode_GetFold(t *testing.T) {
	doc, err := catalog.ParseJSON([]byte(`{"Weapon": 1, "weapon": 2, "Armor": 3}`))
	require.NoError(t, err)

	v, _ := doc.GetFold("weapon").Int()
	assert.Equal(t, int64(2), v, "exact match wins")
	v, _ = doc.GetFold("ARMOR").Int()
	assert.Equal(t, int64(3), v)
	assert.Nil(t, doc.GetFold("shield"))
}

func TestNode_MarshalJSONRoundTripsOrder(t *testing.T) {
	in := `{"z":1,"a":{"y":[true,null,"s"],"b":2.25}}`
	doc, err := catalog.ParseJSON([]byte(in))
	require.NoError(t, err)

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestFromValueAndObject(t *testing.T) {
	doc, err := catalog.FromValue(map[string]any{
		"b":    []any{"x", 2},
		"a":    1.5,
		"name": "Goblin",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "name"}, doc.Keys())
	assert.Equal(t, "Goblin", doc.Text())

	obj, err := catalog.Object("name", "Orc", "hitPoints", 15, "tags", []string{"humanoid"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "hitPoints", "tags"}, obj.Keys())
	assert.Equal(t, map[string]any{"name": "Orc", "hitPoints": float64(15), "tags": []any{"humanoid"}}, obj.Interface())

	_, err = catalog.Object("odd")
	assert.Error(t, err)
	_, err = catalog.FromValue(struct{}{})
	assert.Error(t, err)
}
