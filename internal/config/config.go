package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	Content    ContentConfig
	Redis      RedisConfig
	Generation GenerationConfig
	Discord    DiscordConfig
	DND5E      DND5EConfig
}

// ContentConfig holds where catalog documents are read from
type ContentConfig struct {
	Root        string `env:"CONTENT_ROOT" envDefault:"content"`
	Source      string `env:"CONTENT_SOURCE" envDefault:"file"` // file or redis
	RedisPrefix string `env:"CONTENT_REDIS_PREFIX" envDefault:"catalog"`
	// Preload reads every document at startup so generation does no I/O
	Preload bool `env:"CONTENT_PRELOAD" envDefault:"false"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// GenerationConfig tunes reference resolution and pattern execution
type GenerationConfig struct {
	Seed         int64             `env:"GENERATION_SEED" envDefault:"0"`
	Fallback     string            `env:"GENERATION_FALLBACK" envDefault:"Unknown"`
	ContextKeys  []string          `env:"CONTEXT_TRAIT_KEYS" envSeparator:"," envDefault:"itemTypeTraits,contexts"`
	WeightFields []string          `env:"WEIGHT_FIELDS" envSeparator:"," envDefault:"rarityWeight,weight"`
	Aliases      map[string]string `env:"REFERENCE_ALIASES" envSeparator:"," envKeyValSeparator:":"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	Timeout time.Duration `env:"DND5E_TIMEOUT" envDefault:"30s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Content.Source {
	case SourceFile, SourceRedis:
	default:
		return nil, fmt.Errorf("CONTENT_SOURCE must be %q or %q, got %q", SourceFile, SourceRedis, cfg.Content.Source)
	}
	if cfg.Content.Source == SourceRedis && cfg.Redis.URL == "" {
		return nil, fmt.Errorf("REDIS_URL is required when CONTENT_SOURCE is %q", SourceRedis)
	}

	return cfg, nil
}

// Content source names
const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

// Validate checks the settings the bot cannot start without
func (d DiscordConfig) Validate() error {
	if d.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if d.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	return nil
}
