package entities

import (
	"time"

	"github.com/google/uuid"
)

// Giveaway represents a single timed raffle, keyed by its announcement message.
// Tracking sets and the ended flag are guarded by the owning registry; the
// entity itself is not safe for concurrent use.
type Giveaway struct {
	CorrelationID uuid.UUID // assigned at creation, for log tracing before MessageID exists
	GuildID       int64
	ChannelID     int64
	MessageID     int64 // announcement message ID; registry key, set after posting
	HostID        int64

	Prize          string
	WinnerCount    int
	RequiredPhrase string
	EndsAt         time.Time

	SaidUsers    map[int64]struct{}
	ReactedUsers map[int64]struct{}
	Ended        bool
}

// NewGiveaway constructs an open giveaway with empty tracking sets.
func NewGiveaway(guildID, channelID, hostID int64, prize, requiredPhrase string, winnerCount int, endsAt time.Time) *Giveaway {
	return &Giveaway{
		CorrelationID:  uuid.New(),
		GuildID:        guildID,
		ChannelID:      channelID,
		HostID:         hostID,
		Prize:          prize,
		WinnerCount:    winnerCount,
		RequiredPhrase: requiredPhrase,
		EndsAt:         endsAt,
		SaidUsers:      make(map[int64]struct{}),
		ReactedUsers:   make(map[int64]struct{}),
	}
}

// IsOpen returns true until the giveaway has been closed.
func (g *Giveaway) IsOpen() bool {
	return !g.Ended
}

// RecordSaid adds a user to the "said the phrase" set.
// Late events after closure are ignored.
func (g *Giveaway) RecordSaid(userID int64) bool {
	if g.Ended {
		return false
	}
	g.SaidUsers[userID] = struct{}{}
	return true
}

// RecordReacted adds a user to the "reacted with the join emoji" set.
// Late events after closure are ignored.
func (g *Giveaway) RecordReacted(userID int64) bool {
	if g.Ended {
		return false
	}
	g.ReactedUsers[userID] = struct{}{}
	return true
}

// Snapshot returns an immutable copy of the giveaway for closure-time
// computations. The tracking sets are copied so later events cannot alter a
// snapshot already handed to a closure function.
func (g *Giveaway) Snapshot() GiveawaySnapshot {
	said := make(map[int64]struct{}, len(g.SaidUsers))
	for id := range g.SaidUsers {
		said[id] = struct{}{}
	}
	reacted := make(map[int64]struct{}, len(g.ReactedUsers))
	for id := range g.ReactedUsers {
		reacted[id] = struct{}{}
	}
	return GiveawaySnapshot{
		CorrelationID:  g.CorrelationID,
		GuildID:        g.GuildID,
		ChannelID:      g.ChannelID,
		MessageID:      g.MessageID,
		HostID:         g.HostID,
		Prize:          g.Prize,
		WinnerCount:    g.WinnerCount,
		RequiredPhrase: g.RequiredPhrase,
		EndsAt:         g.EndsAt,
		Ended:          g.Ended,
		SaidUsers:      said,
		ReactedUsers:   reacted,
	}
}

// GiveawaySnapshot is a point-in-time copy of a giveaway's state.
type GiveawaySnapshot struct {
	CorrelationID uuid.UUID
	GuildID       int64
	ChannelID     int64
	MessageID     int64
	HostID        int64

	Prize          string
	WinnerCount    int
	RequiredPhrase string
	EndsAt         time.Time
	Ended          bool

	SaidUsers    map[int64]struct{}
	ReactedUsers map[int64]struct{}
}
