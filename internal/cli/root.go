// Package cli holds the realmgen commands
package cli

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/config"
	"github.com/KirkDiggler/realm-content/internal/services"
	"github.com/spf13/cobra"
)

// App carries what every command needs
type App struct {
	Config *config.Config
	Logger *slog.Logger
}

// NewRootCommand builds the realmgen command tree
func NewRootCommand(app *App) *cobra.Command {
	if app.Logger == nil {
		app.Logger = slog.Default()
	}

	var (
		root string
		seed int64
	)

	cmd := &cobra.Command{
		Use:           "realmgen",
		Short:         "Resolve references and generate content from a realm catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("root") {
				app.Config.Content.Root = root
				app.Config.Content.Source = config.SourceFile
			}
			if cmd.Flags().Changed("seed") {
				app.Config.Generation.Seed = seed
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&root, "root", "", "Content root directory (overrides CONTENT_ROOT and reads from files)")
	cmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed (overrides GENERATION_SEED, 0 seeds from the clock)")

	cmd.AddCommand(
		resolveCommand(app),
		tokenizeCommand(app),
		patternCommand(app),
		nameCommand(app),
		validateCommand(app),
		importCommand(app),
	)
	return cmd
}

// open builds a provider over the configured source. The returned function
// releases the source.
func (a *App) open(ctx context.Context) (*services.Provider, catalog.ImportSource, func() error, error) {
	return services.OpenProvider(ctx, a.Config, a.Logger)
}
