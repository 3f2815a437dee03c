package core

// Client is one live realtime connection as seen by the hub. ID is
// transport-assigned and distinct from any username; usernames arrive
// with each command, asserted by the client.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	// rooms holds every broadcast group this connection subscribed to.
	// Touched only by the hub goroutine.
	rooms map[string]struct{}

	// quit is closed by the hub on disconnect to stop the command pump.
	quit chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
		rooms:    make(map[string]struct{}),
		quit:     make(chan struct{}),
	}
}
