package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "content", cfg.Content.Root)
	assert.Equal(t, SourceFile, cfg.Content.Source)
	assert.Equal(t, "Unknown", cfg.Generation.Fallback)
	assert.Equal(t, []string{"itemTypeTraits", "contexts"}, cfg.Generation.ContextKeys)
	assert.Equal(t, []string{"rarityWeight", "weight"}, cfg.Generation.WeightFields)
	assert.Equal(t, 30*time.Second, cfg.DND5E.Timeout)
	assert.False(t, cfg.Content.Preload)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CONTENT_ROOT", "/srv/content")
	t.Setenv("GENERATION_SEED", "42")
	t.Setenv("CONTENT_PRELOAD", "true")
	t.Setenv("REFERENCE_ALIASES", "materialRef:materials,enemyRef:enemies")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/content", cfg.Content.Root)
	assert.Equal(t, int64(42), cfg.Generation.Seed)
	assert.True(t, cfg.Content.Preload)
	assert.Equal(t, map[string]string{"materialRef": "materials", "enemyRef": "enemies"}, cfg.Generation.Aliases)
}

func TestLoad_RedisSourceNeedsURL(t *testing.T) {
	t.Setenv("CONTENT_SOURCE", "redis")

	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_URL")

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourceRedis, cfg.Content.Source)
}

func TestLoad_UnknownSource(t *testing.T) {
	t.Setenv("CONTENT_SOURCE", "ftp")

	_, err := Load()
	assert.ErrorContains(t, err, "CONTENT_SOURCE")
}

func TestLoad_BadSeed(t *testing.T) {
	t.Setenv("GENERATION_SEED", "not-a-number")

	_, err := Load()
	assert.ErrorContains(t, err, "parse env:")
}

func TestDiscordConfig_Validate(t *testing.T) {
	assert.Error(t, DiscordConfig{}.Validate())
	assert.Error(t, DiscordConfig{Token: "t"}.Validate())
	assert.NoError(t, DiscordConfig{Token: "t", AppID: "a"}.Validate())
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger("WARN", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")

	buf.Reset()
	NewLogger("nonsense", &buf).Debug("hidden")
	assert.Empty(t, buf.String())
}
