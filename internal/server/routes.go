package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"speakerbook/internal/accounts"
	"speakerbook/internal/middleware"
	"speakerbook/internal/speakers"
)

// RegisterRoutes builds the gin router with all endpoints and middleware
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.healthHandler)

	accounts.RegisterRoutes(r.Group("/accounts"), s.accountsHandler, s.tokens)
	speakers.RegisterRoutes(r.Group("/speakers"), s.speakersHandler, s.tokens)

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"database": s.db.Health(c.Request.Context()),
	})
}
