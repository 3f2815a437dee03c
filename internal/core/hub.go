package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Harrybandukda/gochat-server/internal/store"
)

// membership records which room a connection currently belongs to and the
// username it asserted on join. One entry per connection: a second join
// overwrites the entry without leaving the first room's broadcast group.
type membership struct {
	username string
	room     string
}

// request pairs a command with the client that issued it.
type request struct {
	client *Client
	cmd    *Command
}

// Hub owns the connection-to-room membership table and fans chat events out
// to room subscribers. All state is confined to the Run goroutine, so
// command handlers execute one at a time and need no locking.
type Hub struct {
	store store.MessageStore
	log   zerolog.Logger

	register   chan *Client
	unregister chan *Client
	requests   chan request
	done       chan struct{}

	clients     map[*Client]struct{}
	memberships map[string]membership
	rooms       map[string]*Room
}

// NewHub creates a hub. The message store may be nil, in which case chat
// messages are broadcast without persistence.
func NewHub(st store.MessageStore, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		store:       st,
		log:         *logger,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		requests:    make(chan request),
		done:        make(chan struct{}),
		clients:     make(map[*Client]struct{}),
		memberships: make(map[string]membership),
		rooms:       make(map[string]*Room),
	}
}

// RegisterClient attaches a connection to the hub and starts consuming its
// commands.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient detaches a connection. If the client had joined a room,
// the room is notified that the user left. Unknown clients are a no-op, so
// a duplicate unregister never produces a second broadcast.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run processes registrations and commands until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(ctx, c)
		case c := <-h.unregister:
			h.disconnect(c)
		case req := <-h.requests:
			h.handle(ctx, req.client, req.cmd)
		case <-ctx.Done():
			return
		}
	}
}

// pump forwards one client's commands into the hub loop. It exits when the
// client disconnects, its command channel is closed, or the hub stops.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.requests <- request{client: c, cmd: cmd}:
			case <-c.quit:
				return
			case <-ctx.Done():
				return
			}
		case <-c.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handle(ctx context.Context, c *Client, cmd *Command) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	switch cmd.Kind {
	case CommandJoinRoom:
		h.joinRoom(c, cmd)
	case CommandSendMessage:
		h.sendMessage(ctx, cmd)
	case CommandTyping:
		h.typing(c, cmd)
	case CommandStopTyping:
		h.stopTyping(c, cmd)
	}
}

func (h *Hub) joinRoom(c *Client, cmd *Command) {
	room := h.roomFor(cmd.Room)
	room.AddClient(c)
	c.rooms[cmd.Room] = struct{}{}

	// One room per connection: a repeat join replaces the mapping. The
	// previous room keeps the subscription and gets no "left" broadcast.
	h.memberships[c.ID] = membership{username: cmd.Username, room: cmd.Room}

	room.Broadcast(&Event{
		Kind:     EventUserJoined,
		Room:     cmd.Room,
		Username: cmd.Username,
		Message:  cmd.Username + " has joined the room",
	})
}

func (h *Hub) sendMessage(ctx context.Context, cmd *Command) {
	msg := &store.GroupMessage{
		Room:     cmd.Room,
		FromUser: cmd.Username,
		Message:  cmd.Message,
		DateSent: time.Now().UTC(),
	}

	// The broadcast is not gated on persistence: a failed save is logged
	// and the live message still propagates to the room.
	if h.store != nil {
		if err := h.store.SaveGroupMessage(ctx, msg); err != nil {
			h.log.Warn().Err(err).Str("room", cmd.Room).Str("from", cmd.Username).
				Msg("save group message failed, broadcasting anyway")
		}
	}

	if room, ok := h.rooms[cmd.Room]; ok {
		room.Broadcast(&Event{
			Kind:     EventChatMessage,
			Room:     cmd.Room,
			Username: cmd.Username,
			Message:  cmd.Message,
			SentAt:   msg.DateSent,
		})
	}
}

func (h *Hub) typing(c *Client, cmd *Command) {
	if room, ok := h.rooms[cmd.Room]; ok {
		room.BroadcastExcept(c, &Event{
			Kind:     EventUserTyping,
			Room:     cmd.Room,
			Username: cmd.Username,
		})
	}
}

func (h *Hub) stopTyping(c *Client, cmd *Command) {
	if room, ok := h.rooms[cmd.Room]; ok {
		room.BroadcastExcept(c, &Event{
			Kind: EventUserStopTyping,
			Room: cmd.Room,
		})
	}
}

func (h *Hub) disconnect(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)

	if m, ok := h.memberships[c.ID]; ok {
		if room, exists := h.rooms[m.room]; exists {
			room.Broadcast(&Event{
				Kind:     EventUserLeft,
				Room:     m.room,
				Username: m.username,
				Message:  m.username + " has left the room",
			})
		}
		delete(h.memberships, c.ID)
	}

	for name := range c.rooms {
		if room, ok := h.rooms[name]; ok {
			room.RemoveClient(c)
			if room.Empty() {
				delete(h.rooms, name)
			}
		}
	}

	close(c.Events)
	close(c.quit)
}

func (h *Hub) roomFor(name string) *Room {
	room, ok := h.rooms[name]
	if !ok {
		room = NewRoom(name)
		h.rooms[name] = room
	}
	return room
}
