package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/inkrelay/inkrelay-server/internal/config"
	"github.com/inkrelay/inkrelay-server/internal/core"
	"github.com/inkrelay/inkrelay-server/internal/store"
)

// NewServer builds the HTTP server: health and stats endpoints plus the
// WebSocket entry point.
func NewServer(hub *core.Hub, archive store.Archiver, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	handlers := NewHandlers(hub, archive, logger)
	router.GET("/health", handlers.Health)
	router.GET("/api/stats", handlers.Stats)
	router.GET("/api/rooms/:room/clears", handlers.RoomClears)

	ws := NewWSHandler(hub, cfg.MessageRateLimit, logger)
	router.GET("/ws", ws.Handle)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
