package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/http/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	JWTSecret      string
}

// NewRouter wires every route. ws serves the match stream; it may be nil.
func NewRouter(cfg RouterConfig, engineHandler *EngineHandler, matchHandler *MatchHandler, ws gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "matches": matchHandler.Registry.Len()})
	})

	// Protected routes; a blank secret leaves them open
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		api.POST("/move", engineHandler.Move)
		api.POST("/hint", engineHandler.Hint)
		api.POST("/rate", engineHandler.Rate)
		api.POST("/evaluate", engineHandler.Evaluate)
		api.POST("/search", engineHandler.Search)

		api.POST("/matches", matchHandler.StartMatch)
		api.GET("/matches", matchHandler.ListMatches)
		api.GET("/matches/:id", matchHandler.GetMatch)
	}

	if ws != nil {
		router.GET("/ws/match", middleware.AuthMiddleware(cfg.JWTSecret), ws)
	}

	return router
}
