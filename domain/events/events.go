package events

// EventType represents different types of inbound chat events
type EventType string

const (
	EventTypeMessageReceived EventType = "message_received"
	EventTypeReactionAdded   EventType = "reaction_added"
)

// Event is the base interface for all inbound events
type Event interface {
	Type() EventType
}

// MessageReceived represents a chat message delivered by the gateway,
// already decoded from platform types.
type MessageReceived struct {
	GuildID   int64
	ChannelID int64
	AuthorID  int64
	IsBot     bool
	Content   string
}

func (e MessageReceived) Type() EventType {
	return EventTypeMessageReceived
}

// ReactionAdded represents a reaction placed on a message.
type ReactionAdded struct {
	MessageID int64
	UserID    int64
	Emoji     string
}

func (e ReactionAdded) Type() EventType {
	return EventTypeReactionAdded
}
