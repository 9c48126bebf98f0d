package discord

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
)

// RecoverMiddleware wraps an interaction handler so a panic is logged and
// answered instead of taking the bot down
func RecoverMiddleware(logger *slog.Logger, handlerName string, handler func(*discordgo.Session, *discordgo.InteractionCreate)) func(*discordgo.Session, *discordgo.InteractionCreate) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("interaction handler panicked",
					"handler", handlerName,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()))
				if err := s.InteractionRespond(i.Interaction, errorResponse("An unexpected error occurred.")); err != nil {
					logger.Error("failed to send panic response", "error", err)
				}
			}
		}()

		handler(s, i)
	}
}
