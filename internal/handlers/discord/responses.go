package discord

import (
	"fmt"
	"strings"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/services/generation"
	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x8e44ad

func resultResponse(subcommand string, results []*generation.Result) *discordgo.InteractionResponse {
	embed := &discordgo.MessageEmbed{Color: embedColor}

	switch subcommand {
	case "name":
		embed.Title = "📜 Names"
		lines := make([]string, 0, len(results))
		for _, res := range results {
			lines = append(lines, "• "+res.Text)
		}
		embed.Description = strings.Join(lines, "\n")
	case "resolve":
		res := results[0]
		embed.Title = "🔎 " + res.Request.Reference
		embed.Description = res.Text
		if res.Resolved != nil {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: res.Resolved.Kind.String()}
		}
	default:
		res := results[0]
		embed.Title = "🎲 " + res.Request.Pattern
		embed.Description = res.Text
	}

	if embed.Description == "" {
		embed.Description = "_nothing_"
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	}
}

func errorResponse(message string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "❌ " + message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

// describeError words a content error for the person who typed the command
func describeError(err error) string {
	meta := rcerr.GetMeta(err)
	switch {
	case rcerr.IsParseError(err):
		return fmt.Sprintf("That reference doesn't parse at position %v (`%v`).", meta[rcerr.MetaPosition], meta[rcerr.MetaSubstring])
	case rcerr.IsMissingReference(err):
		msg := fmt.Sprintf("Nothing matches `%v`.", meta[rcerr.MetaReference])
		if suggestions, ok := meta[rcerr.MetaSuggestions].([]string); ok && len(suggestions) > 0 {
			msg += " Did you mean " + strings.Join(suggestions, ", ") + "?"
		}
		return msg
	case rcerr.IsCatalogLoad(err):
		if rcerr.Has(err, rcerr.CodeNotFound) {
			return fmt.Sprintf("There is no catalog document `%v`.", meta[rcerr.MetaResource])
		}
		return "That catalog document could not be read."
	case rcerr.IsSelection(err):
		return "There was nothing to choose from."
	case rcerr.IsInvalidArgument(err):
		return err.Error()
	default:
		return "Something went wrong generating that."
	}
}
