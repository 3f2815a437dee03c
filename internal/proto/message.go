package proto

import (
	"encoding/json"
	"time"
)

// Event names, matching the wire contract of the realtime channel.
const (
	InboundJoinRoom    = "join room"
	InboundChatMessage = "chat message"
	InboundTyping      = "typing"
	InboundStopTyping  = "stop typing"

	OutboundUserJoined     = "user joined"
	OutboundChatMessage    = "chat message"
	OutboundUserTyping     = "user typing"
	OutboundUserStopTyping = "user stop typing"
	OutboundUserLeft       = "user left"
)

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// JoinRoomData requests to join a room under an asserted username.
type JoinRoomData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// ChatMessageData is a chat message from the client.
type ChatMessageData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
	Message  string `json:"message"`
}

// TypingData signals the user started typing.
type TypingData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// StopTypingData signals the user stopped typing.
type StopTypingData struct {
	Room string `json:"room"`
}

// UserJoinedData announces a join to the whole room.
type UserJoinedData struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ChatMessageEvent delivers a chat message with its server timestamp.
type ChatMessageEvent struct {
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// UserTypingData announces typing to everyone but the sender.
type UserTypingData struct {
	Username string `json:"username"`
}

// UserLeftData announces a disconnect to the room.
type UserLeftData struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
