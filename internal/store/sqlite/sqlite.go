package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/Harrybandukda/gochat-server/internal/store"
)

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT NOT NULL UNIQUE,
		firstname     TEXT NOT NULL,
		lastname      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS group_messages (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		room      TEXT NOT NULL,
		from_user TEXT NOT NULL,
		message   TEXT NOT NULL,
		date_sent DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS private_messages (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		from_user TEXT NOT NULL,
		to_user   TEXT NOT NULL,
		message   TEXT NOT NULL,
		date_sent DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_group_messages_room
		ON group_messages(room, date_sent DESC);
	CREATE INDEX IF NOT EXISTS idx_private_messages_pair
		ON private_messages(from_user, to_user, date_sent DESC);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite store and applies the schema.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(schema)
		return err
	})
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply an alternative schema.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== UserStore implementation ====

// CreateUser persists a new user.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, firstname, lastname, passwordHash string) (*store.User, error) {
	query := `
		INSERT INTO users (username, firstname, lastname, password_hash)
		VALUES (?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, username, firstname, lastname, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert user: %w", store.ErrDuplicateUser)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.getUserByID(ctx, id)
}

func (s *SQLiteStore) getUserByID(ctx context.Context, id int64) (*store.User, error) {
	query := `
		SELECT id, username, firstname, lastname, password_hash, created_at
		FROM users
		WHERE id = ?
	`
	var user store.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Firstname,
		&user.Lastname,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	query := `
		SELECT id, username, firstname, lastname, password_hash, created_at
		FROM users
		WHERE username = ?
	`
	var user store.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Firstname,
		&user.Lastname,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, store.ErrNotFound)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// ==== MessageStore implementation ====

// SaveGroupMessage persists a room message.
func (s *SQLiteStore) SaveGroupMessage(ctx context.Context, msg *store.GroupMessage) error {
	if msg.DateSent.IsZero() {
		msg.DateSent = time.Now().UTC()
	}

	query := `
		INSERT INTO group_messages (room, from_user, message, date_sent)
		VALUES (?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, msg.Room, msg.FromUser, msg.Message, msg.DateSent)
	if err != nil {
		return fmt.Errorf("insert group message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	msg.ID = id
	return nil
}

// SavePrivateMessage persists a message between two users.
func (s *SQLiteStore) SavePrivateMessage(ctx context.Context, msg *store.PrivateMessage) error {
	if msg.DateSent.IsZero() {
		msg.DateSent = time.Now().UTC()
	}

	query := `
		INSERT INTO private_messages (from_user, to_user, message, date_sent)
		VALUES (?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, msg.FromUser, msg.ToUser, msg.Message, msg.DateSent)
	if err != nil {
		return fmt.Errorf("insert private message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	msg.ID = id
	return nil
}

// ListGroupMessages returns the most recent messages for a room, newest first.
func (s *SQLiteStore) ListGroupMessages(ctx context.Context, room string, limit int) ([]*store.GroupMessage, error) {
	query := `
		SELECT id, room, from_user, message, date_sent
		FROM group_messages
		WHERE room = ?
		ORDER BY date_sent DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, room, limit)
	if err != nil {
		return nil, fmt.Errorf("query group messages: %w", err)
	}
	defer rows.Close()

	var messages []*store.GroupMessage
	for rows.Next() {
		var msg store.GroupMessage
		if err := rows.Scan(&msg.ID, &msg.Room, &msg.FromUser, &msg.Message, &msg.DateSent); err != nil {
			return nil, fmt.Errorf("scan group message: %w", err)
		}
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}

// ListPrivateMessages returns the most recent messages between two users in
// either direction, newest first.
func (s *SQLiteStore) ListPrivateMessages(ctx context.Context, userA, userB string, limit int) ([]*store.PrivateMessage, error) {
	query := `
		SELECT id, from_user, to_user, message, date_sent
		FROM private_messages
		WHERE (from_user = ? AND to_user = ?)
		   OR (from_user = ? AND to_user = ?)
		ORDER BY date_sent DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, userA, userB, userB, userA, limit)
	if err != nil {
		return nil, fmt.Errorf("query private messages: %w", err)
	}
	defer rows.Close()

	var messages []*store.PrivateMessage
	for rows.Next() {
		var msg store.PrivateMessage
		if err := rows.Scan(&msg.ID, &msg.FromUser, &msg.ToUser, &msg.Message, &msg.DateSent); err != nil {
			return nil, fmt.Errorf("scan private message: %w", err)
		}
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
