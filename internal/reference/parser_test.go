package reference_test

import (
	"testing"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *reference.Expression
	}{
		{
			name: "nested path",
			in:   "@items/weapons/swords:iron-longsword",
			want: &reference.Expression{
				Raw:      "@items/weapons/swords:iron-longsword",
				Domain:   "items",
				Path:     []string{"weapons"},
				Category: "swords",
				Item:     "iron-longsword",
			},
		},
		{
			name: "property chain",
			in:   "@abilities/active:fireball.manaCost.base",
			want: &reference.Expression{
				Raw:        "@abilities/active:fireball.manaCost.base",
				Domain:     "abilities",
				Category:   "active",
				Item:       "fireball",
				Properties: []string{"manaCost", "base"},
			},
		},
		{
			name: "optional with property",
			in:   "@npcs/social_classes:nobles?.description",
			want: &reference.Expression{
				Raw:        "@npcs/social_classes:nobles?.description",
				Domain:     "npcs",
				Category:   "social_classes",
				Item:       "nobles",
				Optional:   true,
				Properties: []string{"description"},
			},
		},
		{
			name: "wildcard",
			in:   "@enemies/humanoid:*",
			want: &reference.Expression{
				Raw:      "@enemies/humanoid:*",
				Domain:   "enemies",
				Category: "humanoid",
				Wildcard: true,
			},
		},
		{
			name: "filters then optional",
			in:   "@items/weapons:*[rarity=rare&stats.damage>=5,enchantable]?",
			want: &reference.Expression{
				Raw:      "@items/weapons:*[rarity=rare&stats.damage>=5,enchantable]?",
				Domain:   "items",
				Category: "weapons",
				Wildcard: true,
				Optional: true,
				Filters: []reference.Filter{
					{Property: []string{"rarity"}, Op: reference.OpEq, Value: "rare"},
					{Property: []string{"stats", "damage"}, Op: reference.OpGe, Value: "5"},
					{Property: []string{"enchantable"}, Op: reference.OpExists},
				},
			},
		},
		{
			name: "outer whitespace trimmed",
			in:   "  @items/weapons:axe\n",
			want: &reference.Expression{
				Raw:      "@items/weapons:axe",
				Domain:   "items",
				Category: "weapons",
				Item:     "axe",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := reference.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantPos int
		wantSub string
	}{
		{name: "missing @", in: "items/weapons:axe", wantPos: 0, wantSub: "items"},
		{name: "missing colon", in: "@items/weapons", wantPos: 14, wantSub: ""},
		{name: "empty domain", in: "@/weapons:axe", wantPos: 1, wantSub: "/weapons"},
		{name: "no path", in: "@items:axe", wantPos: 6, wantSub: ":axe"},
		{name: "empty path segment", in: "@items//swords:axe", wantPos: 7, wantSub: "/swords"},
		{name: "empty item", in: "@items/weapons:", wantPos: 15, wantSub: ""},
		{name: "empty property", in: "@items/weapons:axe.", wantPos: 19, wantSub: ""},
		{name: "wildcard with property", in: "@enemies/humanoid:*.name", wantPos: 19, wantSub: ".name"},
		{name: "interior whitespace", in: "@items/weap ons:axe", wantPos: 11, wantSub: " ons"},
		{name: "empty filter block", in: "@items/weapons:axe[]", wantPos: 18, wantSub: "["},
		{name: "empty filter value", in: "@items/weapons:axe[rarity=]", wantPos: 25, wantSub: "="},
		{name: "unterminated filter", in: "@items/weapons:axe[rarity", wantPos: 18, wantSub: "[rarity"},
		{name: "trailing garbage", in: "@items/weapons:axe!", wantPos: 18, wantSub: "!"},
		{name: "optional twice", in: "@items/weapons:axe??", wantPos: 19, wantSub: "?"},
		{name: "empty", in: "   ", wantPos: 3, wantSub: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := reference.Parse(tt.in)
			assert.Nil(t, got)
			require.True(t, rcerr.IsParseError(err), "got %v", err)

			meta := rcerr.GetMeta(err)
			assert.Equal(t, tt.wantPos, meta[rcerr.MetaPosition])
			assert.Equal(t, tt.wantSub, meta[rcerr.MetaSubstring])
			assert.Equal(t, tt.in, meta[rcerr.MetaInput])
		})
	}
}

func TestParse_StableAcrossCalls(t *testing.T) {
	first, err := reference.Parse("@items/weapons/swords:iron-longsword.damage")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := reference.Parse(" @items/weapons/swords:iron-longsword.damage ")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestParseShorthand(t *testing.T) {
	got, err := reference.ParseShorthand("@materialRef/weapon")
	require.NoError(t, err)
	assert.Equal(t, &reference.Expression{
		Raw:       "@materialRef/weapon",
		Domain:    "materialRef",
		Shorthand: true,
		Context:   "weapon",
	}, got)

	got, err = reference.ParseShorthand("@materialRef?")
	require.NoError(t, err)
	assert.Empty(t, got.Context)
	assert.True(t, got.Optional)

	for _, bad := range []string{"@materialRef/", "@materialRef/weapon/blade", "materialRef/weapon", "@"} {
		_, err := reference.ParseShorthand(bad)
		assert.True(t, rcerr.IsParseError(err), bad)
	}
}

func TestParseAny(t *testing.T) {
	full, err := reference.ParseAny("@items/weapons:axe")
	require.NoError(t, err)
	assert.False(t, full.Shorthand)

	short, err := reference.ParseAny("@materialRef/armor")
	require.NoError(t, err)
	assert.True(t, short.Shorthand)
}

func TestExpression_String(t *testing.T) {
	for _, in := range []string{
		"@items/weapons/swords:iron-longsword",
		"@npcs/social_classes:nobles?.description",
		"@items/weapons:*[rarity=rare&stats.damage>=5&enchantable]?",
		"@materialRef/weapon?",
	} {
		expr, err := reference.ParseAny(in)
		require.NoError(t, err)
		assert.Equal(t, in, expr.String())
	}

	expr, err := reference.Parse("@items/weapons/swords:axe")
	require.NoError(t, err)
	assert.Equal(t, []string{"weapons", "swords"}, expr.PathSegments())
}

func TestIsReference(t *testing.T) {
	assert.True(t, reference.IsReference(" @items/x:y"))
	assert.False(t, reference.IsReference("Iron"))
}
