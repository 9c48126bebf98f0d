package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/clients/dnd5e"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/services"
	"github.com/spf13/cobra"
)

// Import targets
const (
	targetRedis = "redis"
	targetDir   = "dir"
)

type importFlags struct {
	to  string
	dir string
}

func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.to, "to", targetRedis, "Where to write: redis or dir")
	cmd.Flags().StringVar(&f.dir, "dir", "", "Output directory when --to=dir")
}

// writer opens the import target. The returned function releases it.
func (f *importFlags) writer(ctx context.Context, app *App) (catalog.Writer, func() error, error) {
	noop := func() error { return nil }

	switch f.to {
	case targetRedis:
		if app.Config.Redis.URL == "" {
			return nil, noop, rcerr.InvalidArgument("REDIS_URL is required to import into redis")
		}
		client, err := services.NewRedisClient(ctx, app.Config.Redis.URL)
		if err != nil {
			return nil, noop, err
		}
		return catalog.NewRedisSource(client, app.Config.Content.RedisPrefix), client.Close, nil
	case targetDir:
		if f.dir == "" {
			return nil, noop, rcerr.InvalidArgument("--dir is required with --to=dir")
		}
		return catalog.NewDirWriter(f.dir), noop, nil
	default:
		return nil, noop, rcerr.InvalidArgumentf("unknown import target %q", f.to)
	}
}

func importCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy content into a redis cache or a directory",
	}
	cmd.AddCommand(importContentCommand(app), importSRDCommand(app))
	return cmd
}

func importContentCommand(app *App) *cobra.Command {
	var (
		flags importFlags
		from  string
	)

	cmd := &cobra.Command{
		Use:   "content",
		Short: "Copy every document under a content root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if from == "" {
				from = app.Config.Content.Root
			}
			w, closeWriter, err := flags.writer(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer closeErr(closeWriter, &err)

			n, err := catalog.Import(cmd.Context(), catalog.NewFileSource(from), w, app.Logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d documents from %s\n", n, from)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "Content root to read (defaults to CONTENT_ROOT)")
	return cmd
}

func importSRDCommand(app *App) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "srd",
		Short: "Fetch SRD equipment and monsters from the D&D 5e API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			w, closeWriter, err := flags.writer(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer closeErr(closeWriter, &err)

			importer, err := dnd5e.New(&dnd5e.Config{
				HttpClient: &http.Client{Timeout: app.Config.DND5E.Timeout},
				Logger:     app.Logger,
			})
			if err != nil {
				return err
			}

			n, err := importer.Import(cmd.Context(), w)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d SRD documents (%s, %s)\n", n, dnd5e.ItemsKey, dnd5e.EnemiesKey)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
