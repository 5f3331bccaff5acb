package giveaway

import (
	"fmt"

	"raffler/bot/common"
	"raffler/domain/entities"
	"raffler/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// CreateAnnouncementEmbed creates the public announcement for a new giveaway
func CreateAnnouncementEmbed(g *entities.Giveaway, joinEmoji string) *discordgo.MessageEmbed {
	description := fmt.Sprintf(
		"Prize: **%s**\n"+
			"Host: %s\n"+
			"Winners: **%d**\n"+
			"Ends: %s (%s)\n"+
			"How to join: react to this message with %s\n"+
			"Requirement: say `%s` in any channel\n",
		g.Prize,
		common.GetUserMention(g.HostID),
		g.WinnerCount,
		common.FormatDiscordTimestamp(g.EndsAt, "f"),
		common.FormatDiscordTimestamp(g.EndsAt, "R"),
		joinEmoji,
		g.RequiredPhrase,
	)

	return &discordgo.MessageEmbed{
		Title:       "🎉 Giveaway started!",
		Description: description,
		Color:       common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Good luck!",
		},
	}
}

// CreateClosureEmbed creates the public results message for a closed giveaway
func CreateClosureEmbed(result *interfaces.ClosureResult, joinEmoji string) *discordgo.MessageEmbed {
	g := result.Giveaway

	if len(result.Winners) == 0 {
		return &discordgo.MessageEmbed{
			Title: fmt.Sprintf("🎁 Giveaway ended: %s", g.Prize),
			Description: fmt.Sprintf(
				"No qualified entrants (needed to say `%s` and react with %s).",
				g.RequiredPhrase, joinEmoji,
			),
			Color: common.ColorWarning,
		}
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎁 Giveaway ended: %s", g.Prize),
		Description: fmt.Sprintf(
			"Winners: %s\n"+
				"Requirement: said `%s` in any channel and reacted with %s on the announcement.",
			common.FormatMentionList(result.Winners),
			g.RequiredPhrase,
			joinEmoji,
		),
		Color: common.ColorSuccess,
	}
}

// endedAnnouncementEmbed rebuilds the original announcement embed in its
// ended form, keeping title, description and fields
func endedAnnouncementEmbed(original *discordgo.MessageEmbed) *discordgo.MessageEmbed {
	ended := &discordgo.MessageEmbed{
		Title:       original.Title,
		Description: original.Description,
		Color:       common.ColorDanger,
		Fields:      original.Fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Giveaway ended",
		},
	}
	if ended.Title == "" {
		ended.Title = "🎉 Giveaway"
	}
	return ended
}
