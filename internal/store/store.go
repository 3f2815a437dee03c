package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUser is returned when a username is already taken.
	ErrDuplicateUser = errors.New("user already exists")
)

// User represents a registered user.
type User struct {
	ID           int64
	Username     string
	Firstname    string
	Lastname     string
	PasswordHash string
	CreatedAt    time.Time
}

// GroupMessage is a persisted message sent to a room.
type GroupMessage struct {
	ID       int64
	Room     string
	FromUser string
	Message  string
	DateSent time.Time
}

// PrivateMessage is a persisted message between two users.
type PrivateMessage struct {
	ID       int64
	FromUser string
	ToUser   string
	Message  string
	DateSent time.Time
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser persists a new user. Returns ErrDuplicateUser if the
	// username is taken.
	CreateUser(ctx context.Context, username, firstname, lastname, passwordHash string) (*User, error)

	// GetUserByUsername retrieves a user by username. Returns ErrNotFound
	// if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// MessageStore handles message persistence.
type MessageStore interface {
	// SaveGroupMessage persists a room message. DateSent is assigned by
	// the store when zero; ID is backfilled on success.
	SaveGroupMessage(ctx context.Context, msg *GroupMessage) error

	// SavePrivateMessage persists a message between two users.
	SavePrivateMessage(ctx context.Context, msg *PrivateMessage) error

	// ListGroupMessages returns the most recent messages for a room,
	// newest first, up to limit.
	ListGroupMessages(ctx context.Context, room string, limit int) ([]*GroupMessage, error)

	// ListPrivateMessages returns the most recent messages exchanged
	// between two users in either direction, newest first, up to limit.
	ListPrivateMessages(ctx context.Context, userA, userB string, limit int) ([]*PrivateMessage, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
