package bot

import (
	"fmt"

	"raffler/bot/features/giveaway"
	"raffler/config"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token string
}

// Bot manages the Discord session and the giveaway feature
type Bot struct {
	config    Config
	session   *discordgo.Session
	giveaways *giveaway.Feature
}

// New creates a new bot instance, opens the gateway connection and registers
// slash commands
func New(botConfig Config, appConfig *config.Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + botConfig.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	bot := &Bot{
		config:  botConfig,
		session: dg,
	}
	bot.giveaways = giveaway.NewFeature(dg, appConfig)

	// Register handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleReactionAdd)
	dg.AddHandler(bot.handleReady)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	b.giveaways.Shutdown()
	log.Info("Pending giveaway timers released")

	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// handleCommands routes slash commands to the giveaway feature
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "gstart", "gend", "greroll":
		b.giveaways.HandleCommand(s, i)
	}
}

// handleMessageCreate feeds guild messages into the giveaway phrase tracker
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.giveaways.HandleMessageCreate(s, m)
}

// handleReactionAdd feeds reactions into the giveaway join tracker
func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	b.giveaways.HandleReactionAdd(s, r)
}

// handleReady sets presence once the gateway session is up
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	if err := s.UpdateGameStatus(0, "🎉 /gstart"); err != nil {
		log.Warnf("Failed to set presence: %v", err)
	}
	log.Infof("Logged in as %s#%s", r.User.Username, r.User.Discriminator)
}
