package catalog_test

import (
	"testing"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_String(t *testing.T) {
	assert.Equal(t, "items/weapons/catalog", catalog.CatalogKey("items", "weapons").String())
	assert.Equal(t, "materials/catalog", catalog.CatalogKey("materials").String())
	assert.Equal(t, "npcs/nobles/names", catalog.NamesKey("npcs", "nobles").String())
	assert.Equal(t, "items/catalog", catalog.Key{Domain: "items"}.String())
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want catalog.Key
	}{
		{in: "materials", want: catalog.CatalogKey("materials")},
		{in: "items/weapons", want: catalog.CatalogKey("items", "weapons")},
		{in: "items/weapons/catalog", want: catalog.CatalogKey("items", "weapons")},
		{in: "/npcs/nobles/names/", want: catalog.NamesKey("npcs", "nobles")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			got, err := catalog.ParseKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := catalog.ParseKey("")
	assert.True(t, rcerr.IsInvalidArgument(err))
}

func TestKey_ValidateRejectsTraversal(t *testing.T) {
	bad := []catalog.Key{
		{Domain: ""},
		{Domain: "..", Name: "catalog"},
		{Domain: "items", Path: []string{"..", "etc"}},
		{Domain: "items", Path: []string{"a/b"}},
		{Domain: `items\x`},
		{Domain: "items", Path: []string{""}},
	}
	for _, k := range bad {
		assert.True(t, rcerr.IsInvalidArgument(k.Validate()), "%#v", k)
	}
	assert.NoError(t, catalog.CatalogKey("items", "weapons").Validate())
}
