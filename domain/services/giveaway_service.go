package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"raffler/domain/entities"
	"raffler/domain/events"
	"raffler/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// GiveawayConfig carries the process-wide giveaway settings.
type GiveawayConfig struct {
	JoinEmoji           string
	MaxWinners          int
	PhraseMatchMode     string
	PhraseCaseSensitive bool
}

// giveawayService implements the giveaway lifecycle: it routes inbound events
// into the registry, performs close-once closure with winner selection, and
// exposes start/end/reroll to the command layer.
type giveawayService struct {
	cfg       GiveawayConfig
	registry  *Registry
	scheduler *ClosureScheduler
	matcher   PhraseMatcher
	announcer interfaces.AnnouncementPoster
	results   interfaces.ResultPoster
	members   interfaces.MemberResolver
}

// NewGiveawayService creates the orchestrator. The registry and scheduler are
// owned by the returned service; collaborators handle all platform I/O.
func NewGiveawayService(
	cfg GiveawayConfig,
	announcer interfaces.AnnouncementPoster,
	results interfaces.ResultPoster,
	members interfaces.MemberResolver,
) interfaces.GiveawayService {
	s := &giveawayService{
		cfg:       cfg,
		registry:  NewRegistry(),
		matcher:   NewPhraseMatcher(cfg.PhraseMatchMode, cfg.PhraseCaseSensitive),
		announcer: announcer,
		results:   results,
		members:   members,
	}
	s.scheduler = NewClosureScheduler(s.fireClosure)
	return s
}

// Start validates the command input, posts the announcement to obtain the
// registry key, registers the giveaway and arms its closure timer. Validation
// failures never mutate state.
func (s *giveawayService) Start(ctx context.Context, input interfaces.StartGiveawayInput) (*entities.Giveaway, error) {
	if strings.TrimSpace(input.RequiredPhrase) == "" {
		return nil, ErrInvalidPhrase
	}
	if input.WinnerCount < 1 || input.WinnerCount > s.cfg.MaxWinners {
		return nil, ErrInvalidWinnerCount
	}

	seconds, err := ParseDuration(input.DurationText)
	if err != nil {
		return nil, err
	}
	endsAt := time.Now().Add(time.Duration(seconds) * time.Second)

	giveaway := entities.NewGiveaway(
		input.GuildID,
		input.ChannelID,
		input.HostID,
		input.Prize,
		input.RequiredPhrase,
		input.WinnerCount,
		endsAt,
	)

	messageID, err := s.announcer.PostAnnouncement(ctx, giveaway)
	if err != nil {
		return nil, fmt.Errorf("failed to post giveaway announcement: %w", err)
	}
	giveaway.MessageID = messageID

	if err := s.registry.Create(giveaway); err != nil {
		// Message IDs come from a freshly sent announcement, so a collision
		// means a broken invariant rather than user error.
		return nil, fmt.Errorf("failed to register giveaway %d: %w", messageID, err)
	}

	s.scheduler.Arm(messageID, endsAt)

	log.WithFields(log.Fields{
		"correlation_id": giveaway.CorrelationID,
		"guild_id":       giveaway.GuildID,
		"channel_id":     giveaway.ChannelID,
		"message_id":     messageID,
		"prize":          giveaway.Prize,
		"winner_count":   giveaway.WinnerCount,
		"ends_at":        endsAt,
	}).Info("Giveaway started")

	return giveaway, nil
}

// Close finalizes a giveaway exactly once, regardless of whether the timer or
// a manual end command got here first. Inside the guard it computes the
// eligible pool against live membership and draws winners; rendering is
// fire-and-forget and never rolls back the recorded closure.
func (s *giveawayService) Close(ctx context.Context, messageID int64) (*interfaces.ClosureResult, error) {
	var result *interfaces.ClosureResult
	var selectErr error

	err := s.registry.CloseOnce(messageID, func(snapshot entities.GiveawaySnapshot) {
		pool := s.eligiblePool(snapshot)
		winners, err := PickWinners(pool, snapshot.WinnerCount)
		if err != nil {
			selectErr = err
			winners = []int64{}
		}
		result = &interfaces.ClosureResult{
			Giveaway: snapshot,
			Winners:  winners,
		}
	})
	if err != nil {
		return nil, err
	}
	if selectErr != nil {
		log.WithError(selectErr).WithField("message_id", messageID).
			Error("Winner selection failed, closing with empty winner list")
	}

	// The closure is recorded; a lingering timer fire is now harmless, but
	// its resources should still be released.
	s.scheduler.Cancel(messageID)

	log.WithFields(log.Fields{
		"correlation_id": result.Giveaway.CorrelationID,
		"message_id":     messageID,
		"winner_count":   len(result.Winners),
	}).Info("Giveaway closed")

	if err := s.results.PostClosure(ctx, result); err != nil {
		log.WithError(err).WithField("message_id", messageID).
			Error("Failed to post giveaway closure results")
	}

	return result, nil
}

// Reroll draws a fresh independent sample from the current eligible pool. It
// does not exclude prior winners and mutates nothing, so repeated calls may
// yield different results.
func (s *giveawayService) Reroll(ctx context.Context, messageID int64, winnerCount int) ([]int64, error) {
	if winnerCount < 1 || winnerCount > s.cfg.MaxWinners {
		return nil, ErrInvalidWinnerCount
	}

	snapshot, ok := s.registry.Get(messageID)
	if !ok {
		return nil, ErrNotFound
	}

	pool := s.eligiblePool(snapshot)
	if len(pool) == 0 {
		return nil, ErrNoEligible
	}

	winners, err := PickWinners(pool, winnerCount)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"message_id":   messageID,
		"pool_size":    len(pool),
		"winner_count": len(winners),
	}).Info("Giveaway rerolled")

	return winners, nil
}

// HandleMessage records phrase qualification for every open giveaway in the
// message's guild. Bot authors and blank content are ignored.
func (s *giveawayService) HandleMessage(ev events.MessageReceived) {
	if ev.IsBot || strings.TrimSpace(ev.Content) == "" {
		return
	}
	s.registry.RecordPhrase(ev.GuildID, ev.AuthorID, ev.Content, s.matcher)
}

// HandleReaction records a join reaction. Non-join emoji and unknown or ended
// giveaways are silent no-ops; the gateway adapter already filters the bot's
// own reactions.
func (s *giveawayService) HandleReaction(ev events.ReactionAdded) {
	if ev.Emoji != s.cfg.JoinEmoji {
		return
	}
	s.registry.RecordReaction(ev.MessageID, ev.UserID)
}

// Shutdown releases all pending closure timers.
func (s *giveawayService) Shutdown() {
	s.scheduler.StopAll()
}

// fireClosure is the scheduler callback for automatic closure.
func (s *giveawayService) fireClosure(messageID int64) {
	if _, err := s.Close(context.Background(), messageID); err != nil {
		// ErrAlreadyClosed means a manual end won the race, which is fine.
		if !errors.Is(err, ErrAlreadyClosed) {
			log.WithError(err).WithField("message_id", messageID).
				Error("Automatic giveaway closure failed")
		}
	}
}

// eligiblePool computes reacted ∩ said, filtered through the member resolver.
// Computed fresh on every call: membership can change between events and
// closure, and a user who left the guild becomes ineligible retroactively.
func (s *giveawayService) eligiblePool(snapshot entities.GiveawaySnapshot) []int64 {
	pool := make([]int64, 0, len(snapshot.ReactedUsers))
	for userID := range snapshot.ReactedUsers {
		if _, said := snapshot.SaidUsers[userID]; !said {
			continue
		}
		if !s.members.IsEligibleMember(snapshot.GuildID, userID) {
			continue
		}
		pool = append(pool, userID)
	}
	return pool
}
