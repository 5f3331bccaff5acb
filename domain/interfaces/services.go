package interfaces

import (
	"context"

	"raffler/domain/entities"
	"raffler/domain/events"
)

// GiveawayService defines the interface for giveaway lifecycle operations
type GiveawayService interface {
	// Start validates input, posts the announcement via the AnnouncementPoster,
	// registers the giveaway and arms its closure timer
	Start(ctx context.Context, input StartGiveawayInput) (*entities.Giveaway, error)

	// Close finalizes a giveaway exactly once, drawing winners from the
	// eligible pool; later calls return ErrAlreadyClosed
	Close(ctx context.Context, messageID int64) (*ClosureResult, error)

	// Reroll draws a fresh independent winner sample from the current eligible
	// pool without mutating stored state
	Reroll(ctx context.Context, messageID int64, winnerCount int) ([]int64, error)

	// HandleMessage records phrase qualification against every open giveaway
	// in the message's guild
	HandleMessage(ev events.MessageReceived)

	// HandleReaction records a join reaction on a giveaway announcement
	HandleReaction(ev events.ReactionAdded)

	// Shutdown releases all pending closure timers
	Shutdown()
}

// StartGiveawayInput carries the slash command parameters for Start
type StartGiveawayInput struct {
	GuildID        int64
	ChannelID      int64
	HostID         int64
	Prize          string
	DurationText   string
	WinnerCount    int
	RequiredPhrase string
}

// ClosureResult is the outcome of a giveaway closure, handed to the rendering layer
type ClosureResult struct {
	Giveaway entities.GiveawaySnapshot
	Winners  []int64
}

// AnnouncementPoster posts the giveaway announcement message and returns the
// platform-assigned message ID used as the registry key
type AnnouncementPoster interface {
	PostAnnouncement(ctx context.Context, giveaway *entities.Giveaway) (messageID int64, err error)
}

// ResultPoster renders and delivers closure results. Failures are logged by
// the core and never roll back a recorded closure.
type ResultPoster interface {
	PostClosure(ctx context.Context, result *ClosureResult) error
}

// MemberResolver reports whether a user is currently a resolvable, non-bot
// member of a guild. Evaluated fresh at closure and reroll time.
type MemberResolver interface {
	IsEligibleMember(guildID, userID int64) bool
}
