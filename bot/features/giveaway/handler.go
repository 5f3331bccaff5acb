package giveaway

import (
	"context"
	"errors"
	"fmt"

	"raffler/bot/common"
	"raffler/domain/interfaces"
	"raffler/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleStart handles the /gstart command
func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.CanManageServer(i) {
		common.RespondWithError(s, i, "You need the **Manage Server** permission to start giveaways")
		return
	}

	var durationText, prize, requiredPhrase string
	winnerCount := 1
	channelIDStr := i.ChannelID

	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "duration":
			durationText = opt.StringValue()
		case "prize":
			prize = opt.StringValue()
		case "must_said":
			requiredPhrase = opt.StringValue()
		case "winners":
			winnerCount = int(opt.IntValue())
		case "channel":
			if ch := opt.ChannelValue(s); ch != nil {
				channelIDStr = ch.ID
			}
		}
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}
	channelID, err := common.ParseUserID(channelIDStr)
	if err != nil {
		log.Errorf("Failed to parse channel ID %s: %v", channelIDStr, err)
		common.RespondWithError(s, i, "Please pick a text channel for the giveaway")
		return
	}
	hostID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Failed to parse host ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	// Posting the announcement can take a moment
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer response: %v", err)
		return
	}

	ctx := context.Background()
	giveaway, err := f.service.Start(ctx, interfaces.StartGiveawayInput{
		GuildID:        guildID,
		ChannelID:      channelID,
		HostID:         hostID,
		Prize:          prize,
		DurationText:   durationText,
		WinnerCount:    winnerCount,
		RequiredPhrase: requiredPhrase,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDuration):
			common.FollowUpWithError(s, i, "Invalid duration. Use e.g. 1h30m / 45m / 10s / 1d2h, or a plain number of seconds.")
		case errors.Is(err, services.ErrInvalidPhrase):
			common.FollowUpWithError(s, i, "Please provide the phrase entrants must say (e.g. \"i love cats\").")
		case errors.Is(err, services.ErrInvalidWinnerCount):
			common.FollowUpWithError(s, i, fmt.Sprintf("Winner count must be between 1 and %d.", f.config.MaxWinners))
		default:
			log.Errorf("Failed to start giveaway: %v", err)
			common.FollowUpWithError(s, i, "Failed to start the giveaway. Please try again.")
		}
		return
	}

	confirmation := fmt.Sprintf("Giveaway created in <#%d> (message ID: `%d`).", giveaway.ChannelID, giveaway.MessageID)
	if _, err := common.FollowUpWithContent(s, i, confirmation, true); err != nil {
		log.Errorf("Failed to send giveaway confirmation: %v", err)
	}
}

// handleEnd handles the /gend command
func (f *Feature) handleEnd(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.CanManageServer(i) {
		common.RespondWithError(s, i, "You need the **Manage Server** permission to end giveaways")
		return
	}

	messageID, ok := f.messageIDOption(s, i)
	if !ok {
		return
	}

	_, err := f.service.Close(context.Background(), messageID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrAlreadyClosed) {
			common.RespondWithError(s, i, "Giveaway not found or already ended.")
			return
		}
		log.Errorf("Failed to end giveaway %d: %v", messageID, err)
		common.RespondWithError(s, i, "Failed to end the giveaway. Please try again.")
		return
	}

	if err := common.RespondWithContent(s, i, "✅ Giveaway ended.", true); err != nil {
		log.Errorf("Failed to confirm giveaway end: %v", err)
	}
}

// handleReroll handles the /greroll command
func (f *Feature) handleReroll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.CanManageServer(i) {
		common.RespondWithError(s, i, "You need the **Manage Server** permission to reroll giveaways")
		return
	}

	messageID, ok := f.messageIDOption(s, i)
	if !ok {
		return
	}

	winnerCount := 1
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "winners" {
			winnerCount = int(opt.IntValue())
		}
	}

	winners, err := f.service.Reroll(context.Background(), messageID, winnerCount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			common.RespondWithError(s, i, "Giveaway not found.")
		case errors.Is(err, services.ErrNoEligible):
			common.RespondWithError(s, i, "No eligible entrants to reroll.")
		case errors.Is(err, services.ErrInvalidWinnerCount):
			common.RespondWithError(s, i, fmt.Sprintf("Winner count must be between 1 and %d.", f.config.MaxWinners))
		default:
			log.Errorf("Failed to reroll giveaway %d: %v", messageID, err)
			common.RespondWithError(s, i, "Failed to reroll. Please try again.")
		}
		return
	}

	// Reroll results are public, unlike the admin confirmations
	result := fmt.Sprintf("🎲 Reroll result: %s", common.FormatMentionList(winners))
	if err := common.RespondWithContent(s, i, result, false); err != nil {
		log.Errorf("Failed to post reroll result: %v", err)
	}
}

// messageIDOption extracts and validates the message_id command option
func (f *Feature) messageIDOption(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	var raw string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "message_id" {
			raw = opt.StringValue()
		}
	}

	messageID, err := common.ParseUserID(raw)
	if err != nil {
		common.RespondWithError(s, i, "message_id must be a numeric message ID.")
		return 0, false
	}
	return messageID, true
}
