package names

//go:generate mockgen -destination=mock/mock_service.go -package=mocknames -source=service.go

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/dice"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/pattern"
	"github.com/KirkDiggler/realm-content/internal/weighted"
)

// Request asks for one name
type Request struct {
	Domain string
	Path   []string

	// Scope is handed to the pattern executor for shorthand references
	Scope string

	// SocialClass limits NPC patterns to those listing the class
	SocialClass string
}

// Name is a generated name and the pattern that produced it
type Name struct {
	Text    string
	Pattern *Pattern
}

// Service generates names
type Service interface {
	Generate(ctx context.Context, req *Request) (*Name, error)

	// Document loads and decodes the names document for domain and path
	Document(ctx context.Context, domain string, path []string) (*Document, error)
}

// Loader reads catalog documents
type Loader interface {
	LoadDocument(ctx context.Context, key catalog.Key) (*catalog.Node, error)
}

type service struct {
	loader   Loader
	executor pattern.Service
	selector *weighted.Selector[*Pattern]
	logger   *slog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Loader   Loader
	Executor pattern.Service
	Roller   dice.Roller
	Logger   *slog.Logger // Optional - defaults to slog.Default()
}

// NewService creates a new name generator
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, rcerr.InvalidArgument("names config is required")
	}
	if cfg.Loader == nil {
		return nil, rcerr.InvalidArgument("catalog loader is required")
	}
	if cfg.Executor == nil {
		return nil, rcerr.InvalidArgument("pattern executor is required")
	}
	if cfg.Roller == nil {
		return nil, rcerr.InvalidArgument("roller is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		loader:   cfg.Loader,
		executor: cfg.Executor,
		selector: weighted.NewSelector[*Pattern](cfg.Roller),
		logger:   logger,
	}, nil
}

// Document implements Service.Document
func (s *service) Document(ctx context.Context, domain string, path []string) (*Document, error) {
	key := catalog.NamesKey(domain, path...)
	node, err := s.loader.LoadDocument(ctx, key)
	if err != nil {
		return nil, err
	}
	doc, err := DecodeDocument(node)
	if err != nil {
		return nil, rcerr.CatalogLoad(key.String(), err)
	}
	return doc, nil
}

// Generate implements Service.Generate
func (s *service) Generate(ctx context.Context, req *Request) (*Name, error) {
	if req == nil {
		return nil, rcerr.InvalidArgument("name request is required")
	}
	if req.Domain == "" {
		return nil, rcerr.InvalidArgument("domain is required")
	}

	doc, err := s.Document(ctx, req.Domain, req.Path)
	if err != nil {
		return nil, err
	}

	candidates := make([]weighted.Candidate[*Pattern], 0, len(doc.Patterns))
	for _, p := range doc.Patterns {
		if !p.AllowsClass(req.SocialClass) {
			continue
		}
		candidates = append(candidates, weighted.Candidate[*Pattern]{Value: p, Weight: p.Weight})
	}

	chosen, err := s.selector.MustSelect(candidates)
	if err != nil {
		return nil, rcerr.Wrapf(err, "no name pattern in %s for social class %q",
			catalog.NamesKey(req.Domain, req.Path...), req.SocialClass)
	}
	s.logger.Debug("name pattern selected",
		"domain", req.Domain,
		"template", chosen.Template,
		"variant", chosen.Variant.String(),
		"candidates", len(candidates))

	text, err := s.executor.Execute(ctx, chosen.Template, doc.Components, req.Scope)
	if err != nil {
		return nil, rcerr.Wrapf(err, "failed to execute name pattern %q", chosen.Template)
	}

	return &Name{Text: text, Pattern: chosen}, nil
}
