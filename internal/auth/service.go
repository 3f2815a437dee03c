package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harrybandukda/gochat-server/internal/store"
)

var (
	// ErrUserNotFound is returned when logging in with an unknown username.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
)

// Profile holds the public fields returned on a successful login.
// The password hash never leaves this package.
type Profile struct {
	Username  string
	Firstname string
	Lastname  string
}

// Service provides signup and login operations.
//
// No session or token is issued: clients self-assert identity on every
// realtime event. This mirrors the trust model of the system being served.
type Service struct {
	store store.UserStore
}

// NewService creates a new authentication service.
func NewService(userStore store.UserStore) *Service {
	return &Service{store: userStore}
}

// Signup hashes the password and persists a new user. Usernames, names and
// passwords are stored as given; no constraints are applied.
func (s *Service) Signup(ctx context.Context, username, firstname, lastname, password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.store.CreateUser(ctx, username, firstname, lastname, hashedPassword); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// Login validates credentials and returns the public profile.
func (s *Service) Login(ctx context.Context, username, password string) (*Profile, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidPassword
	}

	return &Profile{
		Username:  user.Username,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
	}, nil
}
