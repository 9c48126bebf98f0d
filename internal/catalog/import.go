package catalog

import (
	"context"
	"log/slog"
	"sync/atomic"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"golang.org/x/sync/errgroup"
)

// ImportSource is a source whose documents can be enumerated
type ImportSource interface {
	Source
	Lister
}

// Import copies every document from one source to a writer, decoding each
// on the way so malformed content is rejected before it is published. It
// returns the number of documents written.
func Import(ctx context.Context, from ImportSource, to Writer, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	keys, err := from.List(ctx)
	if err != nil {
		return 0, err
	}

	var written atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			res, err := from.Get(ctx, key)
			if err != nil {
				return rcerr.CatalogLoad(key.String(), err)
			}
			doc, err := res.Decode()
			if err != nil {
				return rcerr.CatalogLoad(res.Location, err)
			}
			if err := to.Put(ctx, key, doc); err != nil {
				return rcerr.Wrapf(err, "failed to write %s", key)
			}
			written.Add(1)
			logger.Debug("document imported", "key", key.String(), "from", res.Location)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(written.Load()), err
	}

	logger.Info("content imported", "documents", written.Load())
	return int(written.Load()), nil
}
