package catalog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Store caches decoded documents for the lifetime of the Store. The first
// request for a key reads and decodes it; concurrent first requests share one
// read. Nothing is invalidated: a key the source reported as not found stays
// missing too, so a warm store does no I/O.
type Store struct {
	source Source
	logger *slog.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	docs    map[string]*Node
	missing map[string]error

	hits   atomic.Int64
	misses atomic.Int64
	// complete is set once the store holds every document the source has
	complete atomic.Bool
}

// StoreConfig holds configuration for the store
type StoreConfig struct {
	Source Source
	Logger *slog.Logger // Optional - defaults to slog.Default()
}

// Stats reports cache activity. Misses counts source reads; Absent counts
// keys remembered as not found.
type Stats struct {
	Loaded int
	Absent int
	Hits   int64
	Misses int64
}

// NewStore creates a new document store
func NewStore(cfg *StoreConfig) (*Store, error) {
	if cfg == nil || cfg.Source == nil {
		return nil, rcerr.InvalidArgument("catalog source is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		source: cfg.Source,
		logger: logger,
		docs:    make(map[string]*Node),
		missing: make(map[string]error),
	}, nil
}

// Load returns the catalog document for domain and path
func (s *Store) Load(ctx context.Context, domain string, path []string) (*Node, error) {
	return s.LoadDocument(ctx, CatalogKey(domain, path...))
}

// LoadDocument returns the document for key, reading it on first use.
// Failures are catalog_load errors wrapping the cause; a missing document
// also carries not_found in its chain.
func (s *Store) LoadDocument(ctx context.Context, key Key) (*Node, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	id := key.String()

	if doc, ok, cause := s.cached(id); ok {
		s.hits.Add(1)
		if cause != nil {
			return nil, rcerr.CatalogLoad(id, cause)
		}
		return doc, nil
	}

	v, err, _ := s.group.Do(id, func() (any, error) {
		if doc, ok, cause := s.cached(id); ok {
			if cause != nil {
				return nil, rcerr.CatalogLoad(id, cause)
			}
			return doc, nil
		}
		if s.complete.Load() {
			cause := rcerr.NotFoundf("document %s is not in the preloaded content", id)
			s.mu.Lock()
			s.missing[id] = cause
			s.mu.Unlock()
			return nil, rcerr.CatalogLoad(id, cause)
		}
		s.misses.Add(1)

		res, err := s.source.Get(ctx, key)
		if err != nil {
			if rcerr.Has(err, rcerr.CodeNotFound) {
				s.mu.Lock()
				s.missing[id] = err
				s.mu.Unlock()
				s.logger.Debug("catalog document absent", "key", id)
			}
			return nil, rcerr.CatalogLoad(id, err)
		}
		doc, err := res.Decode()
		if err != nil {
			return nil, rcerr.CatalogLoad(res.Location, rcerr.WrapWithCode(err, rcerr.CodeInvalidArgument, "malformed document"))
		}

		s.mu.Lock()
		s.docs[id] = doc
		s.mu.Unlock()

		s.logger.Debug("catalog document loaded", "key", id, "location", res.Location)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Node), nil
}

// cached returns the document for id, or the not-found cause when id is
// known to be missing
func (s *Store) cached(id string) (doc *Node, ok bool, cause error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if doc, ok := s.docs[id]; ok {
		return doc, true, nil
	}
	if cause, ok := s.missing[id]; ok {
		return nil, true, cause
	}
	return nil, false, nil
}

// Warm loads keys concurrently so later resolutions do no I/O
func (s *Store) Warm(ctx context.Context, keys []Key) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			_, err := s.LoadDocument(ctx, key)
			return err
		})
	}
	return g.Wait()
}

// WarmAll loads keys, which must be every document the source holds. After
// it succeeds a key outside keys is reported missing without asking the
// source.
func (s *Store) WarmAll(ctx context.Context, keys []Key) error {
	if err := s.Warm(ctx, keys); err != nil {
		return err
	}
	s.complete.Store(true)
	return nil
}

// Stats returns the store's cache counters
func (s *Store) Stats() Stats {
	s.mu.RLock()
	loaded, absent := len(s.docs), len(s.missing)
	s.mu.RUnlock()

	return Stats{
		Loaded: loaded,
		Absent: absent,
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
}
