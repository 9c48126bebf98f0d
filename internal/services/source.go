package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/config"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClient parses url, connects and pings before returning
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, rcerr.WrapWithCode(err, rcerr.CodeInvalidArgument, "failed to parse redis URL")
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, rcerr.Wrap(err, "failed to ping redis")
	}
	return client, nil
}

// OpenSource returns the document source named by the content config. The
// close function releases the redis connection, if one was opened.
func OpenSource(ctx context.Context, cfg *config.Config) (catalog.ImportSource, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Content.Source {
	case config.SourceRedis:
		client, err := NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, noop, err
		}
		return catalog.NewRedisSource(client, cfg.Content.RedisPrefix), client.Close, nil
	case config.SourceFile, "":
		return catalog.NewFileSource(cfg.Content.Root), noop, nil
	default:
		return nil, noop, rcerr.InvalidArgumentf("unknown content source %q", cfg.Content.Source)
	}
}

// ConfigFor builds the provider configuration for source from the
// application config
func ConfigFor(cfg *config.Config, source catalog.Source, logger *slog.Logger) *ProviderConfig {
	return &ProviderConfig{
		Source:       source,
		Seed:         cfg.Generation.Seed,
		ContextKeys:  cfg.Generation.ContextKeys,
		WeightFields: cfg.Generation.WeightFields,
		Aliases:      cfg.Generation.Aliases,
		Fallback:     cfg.Generation.Fallback,
		Logger:       logger,
	}
}

// NewProviderFromConfig opens the configured source and builds a Provider
// over it, preloading every document when CONTENT_PRELOAD is set
func NewProviderFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Provider, func() error, error) {
	provider, _, closeSource, err := OpenProvider(ctx, cfg, logger)
	return provider, closeSource, err
}

// OpenProvider is NewProviderFromConfig for callers that also need the
// source, e.g. to enumerate documents
func OpenProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Provider, catalog.ImportSource, func() error, error) {
	noop := func() error { return nil }

	source, closeSource, err := OpenSource(ctx, cfg)
	if err != nil {
		return nil, nil, noop, err
	}

	provider, err := NewProvider(ConfigFor(cfg, source, logger))
	if err != nil {
		_ = closeSource()
		return nil, nil, noop, err
	}

	if cfg.Content.Preload {
		if _, err := provider.Preload(ctx, source, logger); err != nil {
			_ = closeSource()
			return nil, nil, noop, err
		}
	}
	return provider, source, closeSource, nil
}
