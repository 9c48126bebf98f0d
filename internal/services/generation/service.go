// Package generation runs batches of content requests against one set of
// services, so every request in a batch shares the same document cache.
package generation

//go:generate mockgen -destination=mock/mock_service.go -package=mockgeneration -source=service.go

import (
	"context"
	"log/slog"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/names"
	"github.com/KirkDiggler/realm-content/internal/pattern"
	"github.com/KirkDiggler/realm-content/internal/resolver"
	"github.com/KirkDiggler/realm-content/internal/uuid"
)

// Kind selects what a request produces
type Kind string

const (
	KindResolve Kind = "resolve"
	KindPattern Kind = "pattern"
	KindName    Kind = "name"
)

// Request is one unit of generation
type Request struct {
	Kind Kind

	// Reference is read by KindResolve
	Reference string

	// Pattern and Components are read by KindPattern
	Pattern    string
	Components pattern.Components

	// Domain, Path and SocialClass are read by KindName
	Domain      string
	Path        []string
	SocialClass string

	// Scope is the context handed to the resolver
	Scope string
}

// Result is the outcome of one request. Err is set instead of Text when the
// request failed; other requests in the batch are unaffected.
type Result struct {
	ID      string
	Request *Request
	Text    string

	// Resolved is set for KindResolve
	Resolved *resolver.Result
	// Name is set for KindName
	Name *names.Name

	Err error
}

// Service runs generation requests
type Service interface {
	// Run executes requests in order. The context is checked before each
	// request; on cancellation the results gathered so far are returned with
	// the context's error.
	Run(ctx context.Context, requests []*Request) ([]*Result, error)

	// Generate executes a single request
	Generate(ctx context.Context, req *Request) *Result
}

type service struct {
	resolver resolver.Service
	executor pattern.Service
	names    names.Service
	ids      uuid.Generator
	logger   *slog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Resolver resolver.Service
	Executor pattern.Service
	Names    names.Service
	IDs      uuid.Generator // Optional - defaults to random UUIDs
	Logger   *slog.Logger   // Optional - defaults to slog.Default()
}

// NewService creates a new generation service
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, rcerr.InvalidArgument("generation config is required")
	}
	if cfg.Resolver == nil {
		return nil, rcerr.InvalidArgument("resolver is required")
	}
	if cfg.Executor == nil {
		return nil, rcerr.InvalidArgument("pattern executor is required")
	}
	if cfg.Names == nil {
		return nil, rcerr.InvalidArgument("names service is required")
	}

	svc := &service{
		resolver: cfg.Resolver,
		executor: cfg.Executor,
		names:    cfg.Names,
		ids:      cfg.IDs,
		logger:   cfg.Logger,
	}
	if svc.ids == nil {
		svc.ids = uuid.NewGenerator()
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// Run implements Service.Run
func (s *service) Run(ctx context.Context, requests []*Request) ([]*Result, error) {
	results := make([]*Result, 0, len(requests))
	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("generation batch cancelled", "completed", len(results), "requested", len(requests))
			return results, err
		}
		results = append(results, s.Generate(ctx, req))
	}
	return results, nil
}

// Generate implements Service.Generate
func (s *service) Generate(ctx context.Context, req *Request) *Result {
	result := &Result{ID: s.ids.New(), Request: req}
	if req == nil {
		result.Err = rcerr.InvalidArgument("request is required")
		return result
	}

	switch req.Kind {
	case KindResolve:
		resolved, err := s.resolver.ResolveReference(ctx, req.Reference, req.Scope)
		if err != nil {
			result.Err = err
			break
		}
		result.Resolved = resolved
		result.Text = resolved.Text()

	case KindPattern:
		result.Text, result.Err = s.executor.Execute(ctx, req.Pattern, req.Components, req.Scope)

	case KindName:
		name, err := s.names.Generate(ctx, &names.Request{
			Domain:      req.Domain,
			Path:        req.Path,
			Scope:       req.Scope,
			SocialClass: req.SocialClass,
		})
		if err != nil {
			result.Err = err
			break
		}
		result.Name = name
		result.Text = name.Text

	default:
		result.Err = rcerr.InvalidArgumentf("unknown request kind %q", req.Kind)
	}

	if result.Err != nil {
		s.logger.Warn("generation request failed",
			"id", result.ID,
			"kind", string(req.Kind),
			"code", string(rcerr.GetCode(result.Err)),
			"error", result.Err)
	} else {
		s.logger.Debug("generation request done", "id", result.ID, "kind", string(req.Kind))
	}
	return result
}
