package cli

import (
	"fmt"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/resolver"
	"github.com/spf13/cobra"
)

func validateCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "validate [document...]",
		Short: "Check the references inside catalog documents, e.g. items/weapons",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if !all && len(args) == 0 {
				return rcerr.InvalidArgument("name at least one document or pass --all")
			}

			provider, source, closeSource, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeErr(closeSource, &err)

			var keys []catalog.Key
			if all {
				if keys, err = source.List(cmd.Context()); err != nil {
					return err
				}
			}
			for _, arg := range args {
				key, err := catalog.ParseKey(arg)
				if err != nil {
					return err
				}
				keys = append(keys, key)
			}

			out := cmd.OutOrStdout()
			errorsFound := 0
			for _, key := range keys {
				findings, err := provider.Resolver.Validate(cmd.Context(), key)
				if err != nil {
					return rcerr.Wrapf(err, "failed to validate %s", key)
				}
				for _, f := range findings {
					fmt.Fprintf(out, "%s %s\n", key, f)
					if f.Severity == resolver.SeverityError {
						errorsFound++
					}
				}
			}
			fmt.Fprintf(out, "checked %d documents\n", len(keys))

			if errorsFound > 0 {
				return rcerr.InvalidArgumentf("%d malformed references", errorsFound)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Validate every document in the source")
	return cmd
}
