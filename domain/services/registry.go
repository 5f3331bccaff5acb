package services

import (
	"sync"

	"raffler/domain/entities"
)

// Registry owns the set of active and recently-ended giveaways, keyed by
// announcement message ID. It is the sole synchronization point for tracking
// mutations and the ended flag: discordgo dispatches handlers on separate
// goroutines, so the automatic timer and a manual end command can genuinely
// race on closure. Closed giveaways stay registered so rerolls keep working.
type Registry struct {
	mu        sync.Mutex
	giveaways map[int64]*entities.Giveaway
}

// NewRegistry creates an empty registry. Its lifetime is owned by the
// orchestrator that receives it, never ambient global state.
func NewRegistry() *Registry {
	return &Registry{
		giveaways: make(map[int64]*entities.Giveaway),
	}
}

// Create registers a giveaway under its announcement message ID.
// Returns ErrDuplicateKey on collision, which indicates a broken invariant
// since message IDs come from freshly posted announcements.
func (r *Registry) Create(g *entities.Giveaway) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.giveaways[g.MessageID]; exists {
		return ErrDuplicateKey
	}
	r.giveaways[g.MessageID] = g
	return nil
}

// Get returns a snapshot of the giveaway registered under messageID.
func (r *Registry) Get(messageID int64) (entities.GiveawaySnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.giveaways[messageID]
	if !ok {
		return entities.GiveawaySnapshot{}, false
	}
	return g.Snapshot(), true
}

// CloseOnce atomically flips the ended flag and invokes fn with a snapshot
// taken under the lock. fn runs at most once per key no matter how many
// callers race to close; losers get ErrAlreadyClosed. fn itself runs outside
// the lock so it may perform I/O.
func (r *Registry) CloseOnce(messageID int64, fn func(entities.GiveawaySnapshot)) error {
	r.mu.Lock()
	g, ok := r.giveaways[messageID]
	if !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	if g.Ended {
		r.mu.Unlock()
		return ErrAlreadyClosed
	}
	g.Ended = true
	snapshot := g.Snapshot()
	r.mu.Unlock()

	fn(snapshot)
	return nil
}

// RecordPhrase adds authorID to the "said" set of every still-open giveaway in
// the guild whose required phrase matches content. One message may qualify a
// user for multiple concurrent giveaways. Returns the number of giveaways the
// message qualified for.
func (r *Registry) RecordPhrase(guildID, authorID int64, content string, matcher PhraseMatcher) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := 0
	for _, g := range r.giveaways {
		if g.GuildID != guildID || g.Ended {
			continue
		}
		if matcher.Matches(content, g.RequiredPhrase) {
			if g.RecordSaid(authorID) {
				matched++
			}
		}
	}
	return matched
}

// RecordReaction adds userID to the "reacted" set of the giveaway registered
// under messageID. Unknown or ended giveaways are a silent no-op.
func (r *Registry) RecordReaction(messageID, userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.giveaways[messageID]
	if !ok {
		return false
	}
	return g.RecordReacted(userID)
}

// OpenCount returns the number of giveaways still open in a guild.
func (r *Registry) OpenCount(guildID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, g := range r.giveaways {
		if g.GuildID == guildID && !g.Ended {
			count++
		}
	}
	return count
}
