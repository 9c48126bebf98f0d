package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/config"
	mockdice "github.com/KirkDiggler/realm-content/internal/dice/mock"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/services"
	"github.com/KirkDiggler/realm-content/internal/services/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const materials = `{
	"material_types": {
		"metals": {"items": [
			{"name": "Iron", "rarityWeight": 50, "itemTypeTraits": {"weapon": {}}},
			{"name": "Steel", "rarityWeight": 30, "itemTypeTraits": {"weapon": {}, "armor": {}}}
		]}
	}
}`

func TestNewProvider_SharesOneStore(t *testing.T) {
	source := catalog.NewMemorySource()
	require.NoError(t, source.PutRaw(catalog.CatalogKey("materials"), []byte(materials)))

	roller := mockdice.NewManualMockRoller()
	provider, err := services.NewProvider(&services.ProviderConfig{
		Source:  source,
		Roller:  roller,
		Aliases: map[string]string{"materialRef": "materials"},
	})
	require.NoError(t, err)

	// weights 50 and 30: 51 lands on Steel. The other two requests match a
	// single entry each and draw nothing.
	roller.SetRolls([]int{51})

	results, err := provider.Generation.Run(context.Background(), []*generation.Request{
		{Kind: generation.KindPattern, Pattern: "@materialRef/weapon Sword"},
		{Kind: generation.KindResolve, Reference: "@materials/metals:iron.rarityWeight"},
		{Kind: generation.KindResolve, Reference: "@materials/metals:steel", Scope: "armor"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Steel Sword", results[0].Text)
	assert.Equal(t, "50", results[1].Text)
	assert.Equal(t, "Steel", results[2].Text)
	assert.Equal(t, 1, provider.Store.Stats().Loaded)
	assert.Equal(t, 0, roller.Remaining())
}

func TestNewProvider_RequiresSource(t *testing.T) {
	_, err := services.NewProvider(&services.ProviderConfig{})
	assert.True(t, rcerr.IsInvalidArgument(err))
}

func TestNewProviderFromConfig_FileSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "materials"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "materials", "catalog.json"), []byte(materials), 0o644))

	cfg := &config.Config{
		Content:    config.ContentConfig{Root: root, Source: config.SourceFile},
		Generation: config.GenerationConfig{Seed: 7, Fallback: "Nameless"},
	}

	provider, closeSource, err := services.NewProviderFromConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeSource()) }()

	out, err := provider.Executor.Execute(context.Background(), "{missing}", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Nameless", out)

	result, err := provider.Resolver.ResolveReference(context.Background(), "@materials/metals:*", "")
	require.NoError(t, err)
	assert.Len(t, result.Nodes, 2)
}

func TestNewProviderFromConfig_Preload(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "materials"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "materials", "catalog.json"), []byte(materials), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "npcs", "humans"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "npcs", "humans", "names.json"),
		[]byte(`{"components": {"first": ["Aldric"]}, "patterns": [{"pattern": "{first}"}]}`), 0o644))

	cfg := &config.Config{
		Content:    config.ContentConfig{Root: root, Source: config.SourceFile, Preload: true},
		Generation: config.GenerationConfig{Seed: 3},
	}

	provider, closeSource, err := services.NewProviderFromConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeSource()) }()

	stats := provider.Store.Stats()
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, int64(2), stats.Misses)

	results, err := provider.Generation.Run(context.Background(), []*generation.Request{
		{Kind: generation.KindResolve, Reference: "@materials/metals:iron"},
		{Kind: generation.KindName, Domain: "npcs", Path: []string{"humans"}},
		{Kind: generation.KindResolve, Reference: "@items/weapons:longsword?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Iron", results[0].Text)
	assert.Equal(t, "Aldric", results[1].Text)
	assert.NoError(t, results[2].Err)

	assert.Equal(t, int64(2), provider.Store.Stats().Misses, "a preloaded store reads nothing more")
}

func TestNewProviderFromConfig_PreloadRejectsMalformedContent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "materials"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "materials", "catalog.json"), []byte(`{"items": [`), 0o644))

	cfg := &config.Config{
		Content: config.ContentConfig{Root: root, Source: config.SourceFile, Preload: true},
	}

	_, closeSource, err := services.NewProviderFromConfig(context.Background(), cfg, nil)
	assert.True(t, rcerr.Has(err, rcerr.CodeCatalogLoad))
	assert.NoError(t, closeSource())
}

func TestOpenSource_BadRedisURL(t *testing.T) {
	cfg := &config.Config{
		Content: config.ContentConfig{Source: config.SourceRedis},
		Redis:   config.RedisConfig{URL: "not a url"},
	}

	_, closeSource, err := services.OpenSource(context.Background(), cfg)
	assert.True(t, rcerr.IsInvalidArgument(err))
	assert.NoError(t, closeSource())
}

func TestOpenSource_UnknownSource(t *testing.T) {
	cfg := &config.Config{Content: config.ContentConfig{Source: "ftp"}}

	_, _, err := services.OpenSource(context.Background(), cfg)
	assert.True(t, rcerr.IsInvalidArgument(err))
}
