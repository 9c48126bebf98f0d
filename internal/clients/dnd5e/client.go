// Package dnd5e imports SRD equipment and monsters from the D&D 5e API and
// rewrites them as catalog documents.
package dnd5e

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
	"golang.org/x/sync/errgroup"
)

// Catalog documents written by the importer
var (
	ItemsKey   = catalog.CatalogKey("items", "srd")
	EnemiesKey = catalog.CatalogKey("enemies", "srd")
)

const defaultConcurrency = 8

// Importer fetches SRD content and converts it to catalog documents
type Importer struct {
	api         dnd5e.Interface
	concurrency int
	logger      *slog.Logger
}

// Config holds configuration for the importer
type Config struct {
	HttpClient  *http.Client
	Concurrency int          // Optional - defaults to 8
	Logger      *slog.Logger // Optional - defaults to slog.Default()
}

// New creates an importer talking to the public D&D 5e API
func New(cfg *Config) (*Importer, error) {
	if cfg == nil {
		return nil, rcerr.InvalidArgument("dnd5e config is required")
	}

	api, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, rcerr.Wrap(err, "failed to create dnd5e api client")
	}

	return NewImporter(api, cfg.Concurrency, cfg.Logger), nil
}

// NewImporter wraps an existing API client
func NewImporter(api dnd5e.Interface, concurrency int, logger *slog.Logger) *Importer {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{api: api, concurrency: concurrency, logger: logger}
}

// Import writes the items and enemies documents to w and returns how many
// documents were written
func (i *Importer) Import(ctx context.Context, w catalog.Writer) (int, error) {
	items, err := i.Equipment(ctx)
	if err != nil {
		return 0, err
	}
	if err := w.Put(ctx, ItemsKey, items); err != nil {
		return 0, rcerr.Wrapf(err, "failed to write %s", ItemsKey)
	}

	enemies, err := i.Monsters(ctx)
	if err != nil {
		return 1, err
	}
	if err := w.Put(ctx, EnemiesKey, enemies); err != nil {
		return 1, rcerr.Wrapf(err, "failed to write %s", EnemiesKey)
	}

	return 2, nil
}

// Equipment builds the items document: weapon_types grouped by category and
// range, armor_types by armor category, everything else under gear_types
func (i *Importer) Equipment(ctx context.Context) (*catalog.Node, error) {
	refs, err := i.api.ListEquipment()
	if err != nil {
		return nil, rcerr.Wrap(err, "failed to list equipment")
	}

	fetched := make([]dnd5e.EquipmentInterface, len(refs))
	err = i.fetchAll(ctx, refKeys(refs), func(idx int, key string) error {
		equip, err := i.api.GetEquipment(key)
		if err != nil {
			return err
		}
		fetched[idx] = equip
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc := newGroupedDocument("weapon_types", "armor_types", "gear_types")
	for _, equip := range fetched {
		switch e := equip.(type) {
		case *apiEntities.Weapon:
			doc.add("weapon_types", weaponGroup(e), weaponEntry(e))
		case *apiEntities.Armor:
			doc.add("armor_types", slug(string(e.ArmorCategory)), armorEntry(e))
		case *apiEntities.Equipment:
			doc.add("gear_types", "gear", gearEntry(e))
		}
	}

	i.logger.Info("srd equipment converted", "listed", len(refs), "entries", doc.count)
	return doc.node()
}

// Monsters builds the enemies document: monster_types grouped by creature type
func (i *Importer) Monsters(ctx context.Context) (*catalog.Node, error) {
	refs, err := i.api.ListMonstersWithFilter(&dnd5e.ListMonstersInput{})
	if err != nil {
		return nil, rcerr.Wrap(err, "failed to list monsters")
	}

	fetched := make([]*apiEntities.Monster, len(refs))
	err = i.fetchAll(ctx, refKeys(refs), func(idx int, key string) error {
		monster, err := i.api.GetMonster(key)
		if err != nil {
			return err
		}
		fetched[idx] = monster
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc := newGroupedDocument("monster_types")
	for _, m := range fetched {
		if m == nil {
			continue
		}
		doc.add("monster_types", slug(string(m.Type)), monsterEntry(m))
	}

	i.logger.Info("srd monsters converted", "listed", len(refs), "entries", doc.count)
	return doc.node()
}

// fetchAll calls fetch for every non-empty key with bounded concurrency.
// Individual failures are logged and skipped; only cancellation aborts.
func (i *Importer) fetchAll(ctx context.Context, keys []string, fetch func(idx int, key string) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	var mu sync.Mutex
	failed := 0
	for idx, key := range keys {
		idx, key := idx, key
		if key == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fetch(idx, key); err != nil {
				i.logger.Warn("srd fetch failed", "key", key, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rcerr.Wrap(err, "srd import cancelled")
	}
	if failed > 0 {
		i.logger.Warn("srd fetch finished with failures", "failed", failed, "total", len(keys))
	}
	return nil
}

func refKeys(refs []*apiEntities.ReferenceItem) []string {
	keys := make([]string, len(refs))
	for idx, ref := range refs {
		if ref != nil {
			keys[idx] = ref.Key
		}
	}
	return keys
}
