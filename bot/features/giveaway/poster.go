package giveaway

import (
	"context"
	"fmt"

	"raffler/bot/common"
	"raffler/domain/entities"
	"raffler/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// poster implements AnnouncementPoster and ResultPoster over a Discord session
type poster struct {
	session   *discordgo.Session
	joinEmoji string
}

func newPoster(session *discordgo.Session, joinEmoji string) *poster {
	return &poster{
		session:   session,
		joinEmoji: joinEmoji,
	}
}

// PostAnnouncement posts the giveaway announcement embed and self-reacts with
// the join emoji. Returns the platform-assigned message ID.
func (p *poster) PostAnnouncement(ctx context.Context, g *entities.Giveaway) (int64, error) {
	channelIDStr := common.FormatUserID(g.ChannelID)

	embed := CreateAnnouncementEmbed(g, p.joinEmoji)
	msg, err := p.session.ChannelMessageSendEmbed(channelIDStr, embed)
	if err != nil {
		return 0, fmt.Errorf("failed to post giveaway announcement: %w", err)
	}

	messageID, err := common.ParseUserID(msg.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to parse announcement message ID: %w", err)
	}

	// Best-effort: the giveaway works even if the seed reaction fails
	if err := p.session.MessageReactionAdd(channelIDStr, msg.ID, p.joinEmoji); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"correlation_id": g.CorrelationID,
			"message_id":     messageID,
		}).Warn("Failed to seed join reaction on announcement")
	}

	log.WithFields(log.Fields{
		"correlation_id": g.CorrelationID,
		"guild_id":       g.GuildID,
		"channel_id":     g.ChannelID,
		"message_id":     messageID,
	}).Info("Posted giveaway announcement")

	return messageID, nil
}

// PostClosure posts the public results message and marks the original
// announcement as ended. Both are best-effort; the closure itself is already
// recorded by the time this runs.
func (p *poster) PostClosure(ctx context.Context, result *interfaces.ClosureResult) error {
	g := result.Giveaway
	channelIDStr := common.FormatUserID(g.ChannelID)

	embed := CreateClosureEmbed(result, p.joinEmoji)
	if _, err := p.session.ChannelMessageSendEmbed(channelIDStr, embed); err != nil {
		return fmt.Errorf("failed to post closure results: %w", err)
	}

	p.markAnnouncementEnded(g)

	log.WithFields(log.Fields{
		"correlation_id": g.CorrelationID,
		"message_id":     g.MessageID,
		"winner_count":   len(result.Winners),
	}).Info("Posted giveaway results")

	return nil
}

// markAnnouncementEnded edits the announcement embed into its ended form.
// Failures here are logged and swallowed.
func (p *poster) markAnnouncementEnded(g entities.GiveawaySnapshot) {
	channelIDStr := common.FormatUserID(g.ChannelID)
	messageIDStr := common.FormatUserID(g.MessageID)

	msg, err := p.session.ChannelMessage(channelIDStr, messageIDStr)
	if err != nil {
		log.WithError(err).WithField("message_id", g.MessageID).
			Warn("Failed to fetch announcement for ended edit")
		return
	}
	if len(msg.Embeds) == 0 {
		return
	}

	ended := endedAnnouncementEmbed(msg.Embeds[0])
	_, err = p.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: channelIDStr,
		ID:      messageIDStr,
		Embeds:  &[]*discordgo.MessageEmbed{ended},
	})
	if err != nil {
		log.WithError(err).WithField("message_id", g.MessageID).
			Warn("Failed to mark announcement as ended")
	}
}
