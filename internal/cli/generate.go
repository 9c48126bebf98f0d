package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/names"
	"github.com/KirkDiggler/realm-content/internal/pattern"
	"github.com/KirkDiggler/realm-content/internal/resolver"
	"github.com/KirkDiggler/realm-content/internal/weighted"
	"github.com/spf13/cobra"
)

func resolveCommand(app *App) *cobra.Command {
	var (
		scope  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <reference>",
		Short: "Resolve one reference, e.g. @items/weapons:longsword.damage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			provider, _, closeSource, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeErr(closeSource, &err)

			result, err := provider.Resolver.ResolveReference(cmd.Context(), args[0], scope)
			if err != nil {
				return err
			}
			return printResult(cmd, result, asJSON)
		},
	}

	cmd.Flags().StringVar(&scope, "context", "", "Only match entries supporting this context")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print matched entries as JSON")
	return cmd
}

func printResult(cmd *cobra.Command, result *resolver.Result, asJSON bool) error {
	out := cmd.OutOrStdout()
	if result.IsAbsent() {
		fmt.Fprintln(out, "(absent)")
		return nil
	}
	if !asJSON {
		fmt.Fprintln(out, result.Text())
		return nil
	}

	nodes := result.Nodes
	if result.Kind == resolver.KindPresent {
		nodes = []*catalog.Node{result.Node}
	}
	for _, n := range nodes {
		data, err := n.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	}
	return nil
}

func tokenizeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <pattern>",
		Short: "Show how a pattern splits into tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := pattern.NewTokenizer(app.Config.Generation.Fallback, app.Logger).Tokenize(args[0])
			if err != nil {
				return err
			}
			for _, tok := range tokens {
				switch tok.Kind {
				case pattern.KindComponent:
					fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", tok.Kind, tok.Key)
				case pattern.KindReference:
					fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", tok.Kind, tok.Reference)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", tok.Kind, tok.Raw)
				}
			}
			return nil
		},
	}
}

func patternCommand(app *App) *cobra.Command {
	var (
		scope      string
		components []string
		count      int
	)

	cmd := &cobra.Command{
		Use:   "pattern <pattern>",
		Short: "Execute a pattern, e.g. \"@materialRef/weapon {base}\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			comps, err := parseComponents(components)
			if err != nil {
				return err
			}

			provider, _, closeSource, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeErr(closeSource, &err)

			for i, n := 0, max(count, 1); i < n; i++ {
				text, err := provider.Executor.Execute(cmd.Context(), args[0], comps, scope)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "context", "", "Context for references and shorthand picks")
	cmd.Flags().StringArrayVar(&components, "component", nil, "Component value as key=value[:weight], repeatable")
	cmd.Flags().IntVar(&count, "count", 1, "How many results to generate")
	return cmd
}

// parseComponents reads key=value[:weight] flags
func parseComponents(flags []string) (pattern.Components, error) {
	comps := make(pattern.Components)
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, rcerr.InvalidArgumentf("component %q must look like key=value[:weight]", f)
		}
		weight := 1
		if v, w, found := strings.Cut(value, ":"); found {
			n, err := strconv.Atoi(w)
			if err != nil {
				return nil, rcerr.InvalidArgumentf("component %q has a non-numeric weight", f)
			}
			value, weight = v, n
		}
		comps[key] = append(comps[key], weighted.Candidate[string]{Value: value, Weight: weight})
	}
	return comps, nil
}

func nameCommand(app *App) *cobra.Command {
	var (
		scope       string
		socialClass string
		count       int
	)

	cmd := &cobra.Command{
		Use:   "name <domain/path>",
		Short: "Generate names from a names document, e.g. npcs/humans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			segments := strings.FieldsFunc(args[0], func(r rune) bool { return r == '/' })
			if len(segments) == 0 {
				return rcerr.InvalidArgument("domain is required")
			}

			provider, _, closeSource, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeErr(closeSource, &err)

			req := &names.Request{
				Domain:      segments[0],
				Path:        segments[1:],
				Scope:       scope,
				SocialClass: socialClass,
			}
			if len(req.Path) == 0 {
				req.Path = nil
			}
			for i, n := 0, max(count, 1); i < n; i++ {
				name, err := provider.Names.Generate(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), name.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "context", "", "Context for shorthand references in the patterns")
	cmd.Flags().StringVar(&socialClass, "social-class", "", "Only use NPC patterns for this social class")
	cmd.Flags().IntVar(&count, "count", 1, "How many names to generate")
	return cmd
}

func closeErr(closeFn func() error, err *error) {
	if cerr := closeFn(); cerr != nil && *err == nil {
		*err = cerr
	}
}
