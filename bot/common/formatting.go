package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatDiscordMessageLink creates a Discord message link from guild, channel, and message IDs
func FormatDiscordMessageLink(guildID, channelID, messageID int64) string {
	return fmt.Sprintf("https://discord.com/channels/%d/%d/%d", guildID, channelID, messageID)
}

// FormatMentionList joins user mentions with spaces ("<@1> <@2> <@3>")
func FormatMentionList(userIDs []int64) string {
	mentions := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		mentions = append(mentions, GetUserMention(id))
	}
	return strings.Join(mentions, " ")
}

// FormatDuration formats a duration in a human-readable format
// Examples: "2d 14h 30m", "3h 45m", "45m", "1m"
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return "< 1m"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}

	return strings.Join(parts, " ")
}
