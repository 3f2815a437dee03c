package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Harrybandukda/gochat-server/internal/auth"
)

// AuthHandlers provides HTTP handlers for signup and login.
type AuthHandlers struct {
	authService *auth.Service
	log         *zerolog.Logger
}

// NewAuthHandlers creates a new auth handlers instance.
func NewAuthHandlers(authService *auth.Service, logger *zerolog.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		log:         logger,
	}
}

// SignupRequest represents the signup request body. Fields are intentionally
// unconstrained; absent values propagate into the store as empty strings.
type SignupRequest struct {
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Password  string `json:"password"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileResponse represents the public profile returned on login.
type ProfileResponse struct {
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// MessageResponse represents a success message body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Signup handles user registration.
// POST /api/auth/signup
//
// Every failure, a duplicate username included, collapses to a 500 with the
// error's message string.
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.authService.Signup(c.Request.Context(), req.Username, req.Firstname, req.Lastname, req.Password); err != nil {
		h.log.Error().Err(err).Str("username", req.Username).Msg("signup failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.log.Info().Str("username", req.Username).Msg("user created")
	c.JSON(http.StatusCreated, MessageResponse{Message: "User created successfully"})
}

// Login handles user login. On success the public profile fields are
// returned; no session or token is issued.
// POST /api/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		case errors.Is(err, auth.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid password"})
		default:
			h.log.Error().Err(err).Str("username", req.Username).Msg("login failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Username:  profile.Username,
		Firstname: profile.Firstname,
		Lastname:  profile.Lastname,
	})
}
