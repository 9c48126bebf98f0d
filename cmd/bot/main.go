package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/realm-content/internal/config"
	"github.com/KirkDiggler/realm-content/internal/handlers/discord"
	"github.com/KirkDiggler/realm-content/internal/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := config.NewLogger(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found")
	}

	if err := cfg.Discord.Validate(); err != nil {
		return err
	}
	logger.Info("starting bot",
		"app_id", cfg.Discord.AppID,
		"guild_id", cfg.Discord.GuildID,
		"content_source", cfg.Content.Source)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, closeSource, err := services.NewProviderFromConfig(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Error("failed to close content source", "error", err)
		}
	}()

	handler, err := discord.NewHandler(&discord.HandlerConfig{
		Generation: provider.Generation,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	dg.AddHandler(discord.RecoverMiddleware(logger, "realm", handler.HandleInteraction))

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Error("failed to close Discord connection", "error", err)
		}
	}()

	// An empty guild ID registers global commands, which can take an hour to propagate
	if err := handler.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		return err
	}

	logger.Info("bot is running, press CTRL-C to exit")
	<-ctx.Done()
	logger.Info("shutting down", "documents_cached", provider.Store.Stats().Loaded)
	return nil
}
