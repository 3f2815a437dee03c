package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the client to a room and registers its
	// membership.
	CommandJoinRoom CommandKind = iota
	// CommandSendMessage persists and fans out a chat message.
	CommandSendMessage
	// CommandTyping notifies the rest of the room that the user is typing.
	CommandTyping
	// CommandStopTyping notifies the rest of the room that the user
	// stopped typing.
	CommandStopTyping
)

// Command represents an action requested by a client. Username and Room are
// client-supplied strings taken as-is.
type Command struct {
	Kind     CommandKind
	Username string
	Room     string
	Message  string
}
