package cmd

import (
	"context"
	"fmt"

	"raffler/bot"
	"raffler/config"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting raffler bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token: cfg.DiscordToken,
	}
	discordBot, err := bot.New(botConfig, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}
	log.Info("Shutdown completed")

	return nil
}
