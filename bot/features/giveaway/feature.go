package giveaway

import (
	"raffler/bot/common"
	"raffler/config"
	"raffler/domain/events"
	"raffler/domain/interfaces"
	"raffler/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature represents the giveaway feature: slash command handling, the
// gateway-event adapter feeding the lifecycle service, and result rendering.
type Feature struct {
	session *discordgo.Session
	service interfaces.GiveawayService
	config  *config.Config
}

// NewFeature creates the giveaway feature. The lifecycle service is owned by
// the feature; the session-backed poster and member resolver are its
// collaborators.
func NewFeature(session *discordgo.Session, cfg *config.Config) *Feature {
	p := newPoster(session, cfg.JoinEmoji)
	service := services.NewGiveawayService(
		services.GiveawayConfig{
			JoinEmoji:           cfg.JoinEmoji,
			MaxWinners:          cfg.MaxWinners,
			PhraseMatchMode:     cfg.PhraseMatchMode,
			PhraseCaseSensitive: cfg.PhraseCaseSensitive,
		},
		p,
		p,
		newMemberResolver(session),
	)
	return &Feature{
		session: session,
		service: service,
		config:  cfg,
	}
}

// HandleCommand routes giveaway slash commands to their handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "gstart":
		f.handleStart(s, i)
	case "gend":
		f.handleEnd(s, i)
	case "greroll":
		f.handleReroll(s, i)
	default:
		common.RespondWithError(s, i, "Unknown giveaway command")
	}
}

// HandleMessageCreate adapts an inbound Discord message into the typed
// domain event and feeds it to the lifecycle service.
func (f *Feature) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Skip our own messages and DMs
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.GuildID == "" {
		return
	}

	guildID, err := common.ParseUserID(m.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", m.GuildID, err)
		return
	}
	channelID, err := common.ParseUserID(m.ChannelID)
	if err != nil {
		log.Errorf("Failed to parse channel ID %s: %v", m.ChannelID, err)
		return
	}
	authorID, err := common.ParseUserID(m.Author.ID)
	if err != nil {
		log.Errorf("Failed to parse author ID %s: %v", m.Author.ID, err)
		return
	}

	f.service.HandleMessage(events.MessageReceived{
		GuildID:   guildID,
		ChannelID: channelID,
		AuthorID:  authorID,
		IsBot:     m.Author.Bot,
		Content:   m.Content,
	})
}

// HandleReactionAdd adapts an inbound reaction into the typed domain event.
func (f *Feature) HandleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	// The bot's own join reaction on a fresh announcement must not count
	if r.UserID == s.State.User.ID {
		return
	}

	messageID, err := common.ParseUserID(r.MessageID)
	if err != nil {
		log.Errorf("Failed to parse message ID %s: %v", r.MessageID, err)
		return
	}
	userID, err := common.ParseUserID(r.UserID)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", r.UserID, err)
		return
	}

	f.service.HandleReaction(events.ReactionAdded{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     r.Emoji.APIName(),
	})
}

// Shutdown releases the service's pending closure timers
func (f *Feature) Shutdown() {
	f.service.Shutdown()
}
