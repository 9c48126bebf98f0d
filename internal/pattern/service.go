package pattern

//go:generate mockgen -destination=mock/mock_service.go -package=mockpattern -source=service.go

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/realm-content/internal/dice"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/resolver"
	"github.com/KirkDiggler/realm-content/internal/weighted"
)

// Components maps placeholder keys to their weighted values
type Components map[string][]weighted.Candidate[string]

// Service executes patterns
type Service interface {
	// Execute tokenizes and evaluates pattern. scope is handed to the
	// resolver for every reference.
	Execute(ctx context.Context, pattern string, components Components, scope string) (string, error)

	// ExecuteTokens evaluates already tokenized input
	ExecuteTokens(ctx context.Context, tokens []Token, components Components, scope string) (string, error)

	// Tokenize splits pattern into tokens
	Tokenize(pattern string) ([]Token, error)
}

type service struct {
	resolver  resolver.Service
	selector  *weighted.Selector[string]
	tokenizer *Tokenizer
	fallback  string
	logger    *slog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Resolver resolver.Service
	Roller   dice.Roller
	Fallback string       // Optional - defaults to DefaultFallback
	Logger   *slog.Logger // Optional - defaults to slog.Default()
}

// NewService creates a new pattern executor
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, rcerr.InvalidArgument("pattern config is required")
	}
	if cfg.Resolver == nil {
		return nil, rcerr.InvalidArgument("resolver is required")
	}
	if cfg.Roller == nil {
		return nil, rcerr.InvalidArgument("roller is required")
	}

	fallback := cfg.Fallback
	if fallback == "" {
		fallback = DefaultFallback
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		resolver:  cfg.Resolver,
		selector:  weighted.NewSelector[string](cfg.Roller),
		tokenizer: NewTokenizer(fallback, logger),
		fallback:  fallback,
		logger:    logger,
	}, nil
}

// Tokenize implements Service.Tokenize
func (s *service) Tokenize(pattern string) ([]Token, error) {
	return s.tokenizer.Tokenize(pattern)
}

// Execute implements Service.Execute
func (s *service) Execute(ctx context.Context, pattern string, components Components, scope string) (string, error) {
	tokens, err := s.tokenizer.Tokenize(pattern)
	if err != nil {
		return "", err
	}
	return s.ExecuteTokens(ctx, tokens, components, scope)
}

// ExecuteTokens implements Service.ExecuteTokens. Missing components and
// optional references are skipped; errors from required references abort.
func (s *service) ExecuteTokens(ctx context.Context, tokens []Token, components Components, scope string) (string, error) {
	parts := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		switch tok.Kind {
		case KindLiteral:
			if text := strings.TrimSpace(tok.Raw); text != "" {
				parts = append(parts, text)
			}

		case KindComponent:
			value, ok, err := s.selector.Select(components[tok.Key])
			if err != nil {
				return "", rcerr.Wrapf(err, "failed to select component %s", tok.Key)
			}
			if !ok {
				s.logger.Warn("component skipped", "key", tok.Key, "reason", "missing or empty")
				continue
			}
			if value != "" {
				parts = append(parts, value)
			}

		case KindReference:
			result, err := s.resolver.Resolve(ctx, tok.Reference, scope)
			if err != nil {
				if tok.Reference.Optional {
					s.logger.Warn("optional reference skipped", "reference", tok.Raw, "error", err)
					continue
				}
				return "", err
			}
			text := result.Text()
			if text == "" {
				s.logger.Warn("reference skipped", "reference", tok.Raw, "result", result.Kind.String())
				continue
			}
			parts = append(parts, text)
		}
	}

	out := strings.TrimSpace(strings.Join(parts, " "))
	if out == "" {
		s.logger.Warn("pattern produced no text", "tokens", len(tokens), "fallback", s.fallback)
		return s.fallback, nil
	}
	return out, nil
}
