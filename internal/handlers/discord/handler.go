// Package discord serves the /realm slash command: names, references and
// patterns generated from the content catalog.
package discord

import (
	"context"
	"log/slog"
	"strings"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/services/generation"
	"github.com/bwmarrin/discordgo"
)

const (
	commandName  = "realm"
	maxNameCount = 10
)

// Responder answers an interaction; *discordgo.Session satisfies it
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// CommandRegistrar creates application commands; *discordgo.Session satisfies it
type CommandRegistrar interface {
	ApplicationCommandCreate(appID string, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
}

// Handler handles /realm interactions
type Handler struct {
	generation generation.Service
	logger     *slog.Logger
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	Generation generation.Service
	Logger     *slog.Logger // Optional - defaults to slog.Default()
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil || cfg.Generation == nil {
		return nil, rcerr.InvalidArgument("generation service is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{generation: cfg.Generation, logger: logger}, nil
}

// Commands describes the /realm command and its subcommands
func Commands() []*discordgo.ApplicationCommand {
	contextOption := &discordgo.ApplicationCommandOption{
		Name:        "context",
		Description: "Only use entries that support this context, e.g. weapon",
		Type:        discordgo.ApplicationCommandOptionString,
	}
	minCount := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:        commandName,
			Description: "Generate content from the realm catalog",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "name",
					Description: "Generate names from a names document",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "source",
							Description: "Domain and path, e.g. npcs/humans",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
						{
							Name:        "social_class",
							Description: "Social class for NPC names, e.g. noble",
							Type:        discordgo.ApplicationCommandOptionString,
						},
						{
							Name:        "count",
							Description: "How many names to generate",
							Type:        discordgo.ApplicationCommandOptionInteger,
							MinValue:    &minCount,
							MaxValue:    maxNameCount,
						},
						contextOption,
					},
				},
				{
					Name:        "resolve",
					Description: "Resolve a catalog reference, e.g. @items/weapons:longsword.damage",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "reference",
							Description: "The reference to resolve",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
						contextOption,
					},
				},
				{
					Name:        "pattern",
					Description: "Execute a pattern, e.g. @materialRef/weapon Sword",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "pattern",
							Description: "The pattern to execute",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
						contextOption,
					},
				},
			},
		},
	}
}

// RegisterCommands creates the /realm command for appID, in guildID when set
func (h *Handler) RegisterCommands(r CommandRegistrar, appID, guildID string) error {
	for _, cmd := range Commands() {
		if _, err := r.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
			return rcerr.Wrapf(err, "failed to create command %s", cmd.Name)
		}
		h.logger.Info("registered command", "command", cmd.Name, "guild", guildID)
	}
	return nil
}

// HandleInteraction is the discordgo event handler
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := h.Handle(context.Background(), s, i.Interaction); err != nil {
		h.logger.Error("failed to handle interaction", "error", err)
	}
}

// Handle answers one interaction. Interactions for other commands are ignored.
func (h *Handler) Handle(ctx context.Context, r Responder, i *discordgo.Interaction) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}
	data := i.ApplicationCommandData()
	if data.Name != commandName || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	opts := newOptions(sub.Options)

	var requests []*generation.Request
	switch sub.Name {
	case "name":
		domain, path := splitSource(opts.str("source"))
		count := min(max(opts.integer("count", 1), 1), maxNameCount)
		for i := 0; i < count; i++ {
			requests = append(requests, &generation.Request{
				Kind:        generation.KindName,
				Domain:      domain,
				Path:        path,
				SocialClass: opts.str("social_class"),
				Scope:       opts.str("context"),
			})
		}
	case "resolve":
		requests = append(requests, &generation.Request{
			Kind:      generation.KindResolve,
			Reference: opts.str("reference"),
			Scope:     opts.str("context"),
		})
	case "pattern":
		requests = append(requests, &generation.Request{
			Kind:    generation.KindPattern,
			Pattern: opts.str("pattern"),
			Scope:   opts.str("context"),
		})
	default:
		return r.InteractionRespond(i, errorResponse("Unknown subcommand "+sub.Name))
	}

	results, err := h.generation.Run(ctx, requests)
	if err != nil {
		return r.InteractionRespond(i, errorResponse(describeError(err)))
	}
	for _, res := range results {
		if res.Err != nil {
			h.logger.Info("realm command failed", "subcommand", sub.Name, "id", res.ID, "error", res.Err)
			return r.InteractionRespond(i, errorResponse(describeError(res.Err)))
		}
	}

	return r.InteractionRespond(i, resultResponse(sub.Name, results))
}

// splitSource turns "npcs/humans" into its domain and path
func splitSource(source string) (string, []string) {
	parts := strings.FieldsFunc(source, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return "", nil
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return parts[0], parts[1:]
}
