// Package resolver turns parsed references into catalog values.
package resolver

//go:generate mockgen -destination=mock/mock_service.go -package=mockresolver -source=service.go

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/dice"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/reference"
	"github.com/KirkDiggler/realm-content/internal/weighted"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 3

// Service resolves references against the catalog
type Service interface {
	// Resolve resolves a parsed reference. scope, when set, keeps only
	// entries that declare support for it.
	Resolve(ctx context.Context, expr *reference.Expression, scope string) (*Result, error)

	// ResolveReference parses text and resolves it
	ResolveReference(ctx context.Context, text string, scope string) (*Result, error)

	// Validate checks every reference inside a document
	Validate(ctx context.Context, key catalog.Key) ([]*Finding, error)
}

// Loader is the part of the catalog store the resolver reads through
type Loader interface {
	Load(ctx context.Context, domain string, path []string) (*catalog.Node, error)
	LoadDocument(ctx context.Context, key catalog.Key) (*catalog.Node, error)
}

type service struct {
	loader       Loader
	selector     *weighted.Selector[*catalog.Node]
	contextKeys  []string
	weightFields []string
	aliases      map[string]string
	logger       *slog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Loader       Loader
	Roller       dice.Roller
	ContextKeys  []string          // Optional - defaults to itemTypeTraits, contexts
	WeightFields []string          // Optional - defaults to rarityWeight, weight
	Aliases      map[string]string // Optional - reference domain to catalog domain
	Logger       *slog.Logger      // Optional - defaults to slog.Default()
}

// NewService creates a new resolver
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, rcerr.InvalidArgument("resolver config is required")
	}
	if cfg.Loader == nil {
		return nil, rcerr.InvalidArgument("catalog loader is required")
	}
	if cfg.Roller == nil {
		return nil, rcerr.InvalidArgument("roller is required")
	}

	svc := &service{
		loader:       cfg.Loader,
		selector:     weighted.NewSelector[*catalog.Node](cfg.Roller),
		contextKeys:  cfg.ContextKeys,
		weightFields: cfg.WeightFields,
		aliases:      cfg.Aliases,
		logger:       cfg.Logger,
	}
	if len(svc.contextKeys) == 0 {
		svc.contextKeys = []string{"itemTypeTraits", "contexts"}
	}
	if len(svc.weightFields) == 0 {
		svc.weightFields = []string{"rarityWeight", "weight"}
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc, nil
}

// ResolveReference implements Service.ResolveReference
func (s *service) ResolveReference(ctx context.Context, text string, scope string) (*Result, error) {
	expr, err := reference.ParseAny(text)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, expr, scope)
}

// Resolve implements Service.Resolve
func (s *service) Resolve(ctx context.Context, expr *reference.Expression, scope string) (*Result, error) {
	if expr == nil {
		return nil, rcerr.InvalidArgument("reference is required")
	}
	if expr.Shorthand {
		return s.resolveShorthand(ctx, expr, scope)
	}

	category, all, err := s.category(ctx, expr)
	if err != nil {
		if expr.Optional && rcerr.Has(err, rcerr.CodeNotFound) {
			s.logger.Debug("optional reference has no document", "reference", expr.Raw)
			return absent(expr.Raw), nil
		}
		return nil, err
	}

	var candidates []*catalog.Node
	for _, entry := range category {
		if !expr.Wildcard && !matchesName(entry, expr.Item) {
			continue
		}
		if !matchesFilters(entry, expr.Filters) {
			continue
		}
		if scope != "" && !s.supportsContext(entry, scope) {
			continue
		}
		candidates = append(candidates, entry)
	}

	if len(candidates) == 0 {
		if expr.Optional {
			return absent(expr.Raw), nil
		}
		return nil, s.missing(expr, all)
	}

	if expr.Wildcard {
		return many(expr.Raw, candidates), nil
	}

	chosen, err := s.pick(candidates)
	if err != nil {
		return nil, err
	}

	node, failed := descend(chosen, expr.Properties)
	if failed != "" {
		if expr.Optional {
			return absent(expr.Raw), nil
		}
		return nil, rcerr.MissingReference(expr.Raw, failed)
	}

	s.logger.Debug("reference resolved", "reference", expr.Raw, "entry", label(chosen))
	return present(expr.Raw, node), nil
}

// category finds the entries of the expression's category. A document at
// path+category is the category itself; otherwise the category is looked up
// inside the document at path. all holds every entry of the searched
// document for suggestions.
func (s *service) category(ctx context.Context, expr *reference.Expression) (entries, all []*catalog.Node, err error) {
	domain := s.domain(expr.Domain)

	doc, err := s.loader.Load(ctx, domain, expr.PathSegments())
	if err == nil {
		entries = collectEntries(doc)
		return entries, entries, nil
	}
	if !rcerr.Has(err, rcerr.CodeNotFound) {
		return nil, nil, err
	}

	doc, err = s.loader.Load(ctx, domain, expr.Path)
	if err != nil {
		return nil, nil, err
	}
	if node := findCategory(doc, expr.Category); node != nil {
		entries = collectEntries(node)
	}
	return entries, collectEntries(doc), nil
}

// resolveShorthand picks one weighted entry from the whole domain document
// that supports the shorthand's context, or the caller's scope
func (s *service) resolveShorthand(ctx context.Context, expr *reference.Expression, scope string) (*Result, error) {
	want := expr.Context
	if want == "" {
		want = scope
	}

	doc, err := s.loader.Load(ctx, s.domain(expr.Domain), nil)
	if err != nil {
		if expr.Optional && rcerr.Has(err, rcerr.CodeNotFound) {
			return absent(expr.Raw), nil
		}
		return nil, err
	}

	var candidates []*catalog.Node
	for _, entry := range collectEntries(doc) {
		if want == "" || s.supportsContext(entry, want) {
			candidates = append(candidates, entry)
		}
	}
	if len(candidates) == 0 {
		if expr.Optional {
			return absent(expr.Raw), nil
		}
		return nil, rcerr.MissingReference(expr.Raw, "")
	}

	chosen, err := s.pick(candidates)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("shorthand resolved", "reference", expr.Raw, "context", want, "entry", label(chosen))
	return present(expr.Raw, chosen), nil
}

func (s *service) pick(candidates []*catalog.Node) (*catalog.Node, error) {
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	weightedCandidates := make([]weighted.Candidate[*catalog.Node], len(candidates))
	for i, c := range candidates {
		weightedCandidates[i] = weighted.Candidate[*catalog.Node]{Value: c, Weight: s.weightOf(c)}
	}
	return s.selector.MustSelect(weightedCandidates)
}

func (s *service) domain(name string) string {
	if alias, ok := s.aliases[name]; ok {
		return alias
	}
	return name
}

// missing builds the error for a required reference that matched nothing,
// with the closest entry names as suggestions
func (s *service) missing(expr *reference.Expression, all []*catalog.Node) error {
	err := rcerr.MissingReference(expr.Raw, "")
	if expr.Wildcard || expr.Item == "" {
		return err
	}

	names := make([]string, 0, len(all))
	for _, entry := range all {
		if l := label(entry); l != "" {
			names = append(names, l)
		}
	}
	ranks := fuzzy.RankFindFold(expr.Item, names)
	if len(ranks) == 0 {
		// no label contains the item's letters in order; fall back to edit
		// distance so typos still get a hint
		limit := len(expr.Item)/2 + 1
		for i, name := range names {
			if d := fuzzy.LevenshteinDistance(strings.ToLower(expr.Item), strings.ToLower(name)); d <= limit {
				ranks = append(ranks, fuzzy.Rank{Source: expr.Item, Target: name, Distance: d, OriginalIndex: i})
			}
		}
	}
	if len(ranks) == 0 {
		return err
	}
	sort.Sort(ranks)

	suggestions := make([]string, 0, maxSuggestions)
	for _, r := range ranks {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, r.Target)
	}
	return err.WithMeta(rcerr.MetaSuggestions, suggestions)
}
