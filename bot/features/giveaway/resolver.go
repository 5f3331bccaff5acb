package giveaway

import (
	"raffler/bot/common"

	"github.com/bwmarrin/discordgo"
)

// memberResolver implements interfaces.MemberResolver over session state with
// a REST fallback. A user who left the guild (or is a bot) is not eligible,
// even if they qualified earlier.
type memberResolver struct {
	session *discordgo.Session
}

func newMemberResolver(session *discordgo.Session) *memberResolver {
	return &memberResolver{session: session}
}

func (r *memberResolver) IsEligibleMember(guildID, userID int64) bool {
	guildIDStr := common.FormatUserID(guildID)
	userIDStr := common.FormatUserID(userID)

	member, err := r.session.State.Member(guildIDStr, userIDStr)
	if err != nil || member == nil {
		member, err = r.session.GuildMember(guildIDStr, userIDStr)
		if err != nil || member == nil {
			return false
		}
	}
	return member.User != nil && !member.User.Bot
}
