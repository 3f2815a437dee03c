package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Harrybandukda/gochat-server/internal/store"
)

// historyLimit caps how many messages a history endpoint returns.
const historyLimit = 50

// ChatHandlers provides HTTP handlers for message history endpoints.
type ChatHandlers struct {
	store store.MessageStore
	log   *zerolog.Logger
}

// NewChatHandlers creates a new chat handlers instance.
func NewChatHandlers(st store.MessageStore, logger *zerolog.Logger) *ChatHandlers {
	return &ChatHandlers{
		store: st,
		log:   logger,
	}
}

// GroupMessageResponse represents a group message in API responses.
type GroupMessageResponse struct {
	ID       int64     `json:"id"`
	Room     string    `json:"room"`
	FromUser string    `json:"from_user"`
	Message  string    `json:"message"`
	DateSent time.Time `json:"date_sent"`
}

// PrivateMessageResponse represents a private message in API responses.
type PrivateMessageResponse struct {
	ID       int64     `json:"id"`
	FromUser string    `json:"from_user"`
	ToUser   string    `json:"to_user"`
	Message  string    `json:"message"`
	DateSent time.Time `json:"date_sent"`
}

// ListGroupMessages returns the 50 most recent messages for a room, newest first.
// GET /api/chat/messages/:room
func (h *ChatHandlers) ListGroupMessages(c *gin.Context) {
	room := c.Param("room")

	messages, err := h.store.ListGroupMessages(c.Request.Context(), room, historyLimit)
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("failed to list group messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := make([]GroupMessageResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, GroupMessageResponse{
			ID:       msg.ID,
			Room:     msg.Room,
			FromUser: msg.FromUser,
			Message:  msg.Message,
			DateSent: msg.DateSent,
		})
	}

	c.JSON(http.StatusOK, response)
}

// ListPrivateMessages returns the 50 most recent messages between two users,
// matching the pair in either direction, newest first.
// GET /api/chat/private/:fromUser/:toUser
func (h *ChatHandlers) ListPrivateMessages(c *gin.Context) {
	fromUser := c.Param("fromUser")
	toUser := c.Param("toUser")

	messages, err := h.store.ListPrivateMessages(c.Request.Context(), fromUser, toUser, historyLimit)
	if err != nil {
		h.log.Error().Err(err).Str("from", fromUser).Str("to", toUser).Msg("failed to list private messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := make([]PrivateMessageResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, PrivateMessageResponse{
			ID:       msg.ID,
			FromUser: msg.FromUser,
			ToUser:   msg.ToUser,
			Message:  msg.Message,
			DateSent: msg.DateSent,
		})
	}

	c.JSON(http.StatusOK, response)
}
