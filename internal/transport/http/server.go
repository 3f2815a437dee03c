package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Harrybandukda/gochat-server/internal/auth"
	"github.com/Harrybandukda/gochat-server/internal/config"
	"github.com/Harrybandukda/gochat-server/internal/core"
	"github.com/Harrybandukda/gochat-server/internal/store"
)

// NewServer builds the HTTP server with REST and websocket routes.
func NewServer(hub *core.Hub, authService *auth.Service, st store.Store, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	authHandlers := NewAuthHandlers(authService, logger)
	chatHandlers := NewChatHandlers(st, logger)

	api := router.Group("/api")
	{
		api.POST("/auth/signup", authHandlers.Signup)
		api.POST("/auth/login", authHandlers.Login)
		api.GET("/chat/messages/:room", chatHandlers.ListGroupMessages)
		api.GET("/chat/private/:fromUser/:toUser", chatHandlers.ListPrivateMessages)
	}

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

// LoggerMiddleware logs every HTTP request after it completes.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}
