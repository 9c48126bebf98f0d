package services

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/dice"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/names"
	"github.com/KirkDiggler/realm-content/internal/pattern"
	"github.com/KirkDiggler/realm-content/internal/resolver"
	"github.com/KirkDiggler/realm-content/internal/services/generation"
	"github.com/KirkDiggler/realm-content/internal/uuid"
)

// Provider holds all service instances. Every service shares one Store, so
// the document cache lives as long as the Provider.
type Provider struct {
	Store      *catalog.Store
	Resolver   resolver.Service
	Executor   pattern.Service
	Names      names.Service
	Generation generation.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Source catalog.Source

	// Roller is optional; a roller seeded with Seed is used when nil.
	// Seed 0 seeds from the clock.
	Roller dice.Roller
	Seed   int64

	ContextKeys  []string
	WeightFields []string
	Aliases      map[string]string
	Fallback     string

	IDs    uuid.Generator
	Logger *slog.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil || cfg.Source == nil {
		return nil, rcerr.InvalidArgument("catalog source is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller(cfg.Seed)
	}

	store, err := catalog.NewStore(&catalog.StoreConfig{
		Source: cfg.Source,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	resolverService, err := resolver.NewService(&resolver.ServiceConfig{
		Loader:       store,
		Roller:       roller,
		ContextKeys:  cfg.ContextKeys,
		WeightFields: cfg.WeightFields,
		Aliases:      cfg.Aliases,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	executor, err := pattern.NewService(&pattern.ServiceConfig{
		Resolver: resolverService,
		Roller:   roller,
		Fallback: cfg.Fallback,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	namesService, err := names.NewService(&names.ServiceConfig{
		Loader:   store,
		Executor: executor,
		Roller:   roller,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	generationService, err := generation.NewService(&generation.ServiceConfig{
		Resolver: resolverService,
		Executor: executor,
		Names:    namesService,
		IDs:      cfg.IDs,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	return &Provider{
		Store:      store,
		Resolver:   resolverService,
		Executor:   executor,
		Names:      namesService,
		Generation: generationService,
	}, nil
}

// Preload lists every document lister holds and loads them into the Store.
// It returns the number of documents listed.
func (p *Provider) Preload(ctx context.Context, lister catalog.Lister, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	keys, err := lister.List(ctx)
	if err != nil {
		return 0, rcerr.Wrap(err, "failed to list content for preload")
	}
	if err := p.Store.WarmAll(ctx, keys); err != nil {
		return 0, rcerr.Wrap(err, "failed to preload content")
	}

	stats := p.Store.Stats()
	logger.Info("content preloaded", "documents", len(keys), "loaded", stats.Loaded)
	return len(keys), nil
}
