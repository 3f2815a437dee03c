package core

import "time"

// EventKind is a notification the hub emits to clients.
type EventKind int

const (
	// EventUserJoined notifies the room that a user joined, joiner included.
	EventUserJoined EventKind = iota
	// EventChatMessage carries a chat message to every room subscriber.
	EventChatMessage
	// EventUserTyping notifies the room, sender excluded, that a user is typing.
	EventUserTyping
	// EventUserStopTyping notifies the room, sender excluded, that a user
	// stopped typing.
	EventUserStopTyping
	// EventUserLeft notifies the room that a user disconnected.
	EventUserLeft
)

// Event is sent to clients to describe what happened in a room.
type Event struct {
	Kind     EventKind
	Room     string
	Username string
	Message  string
	SentAt   time.Time
}
