package accounts

import (
	"github.com/gin-gonic/gin"

	"speakerbook/internal/middleware"
	"speakerbook/internal/token"
)

// RegisterRoutes wires the learner endpoints onto the given router group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, verifier middleware.Verifier) {
	// Public routes
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/verify-email", h.VerifyEmail)

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.Auth(verifier), middleware.RequireRole(token.RoleLearner))
	{
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.GET("/speakers", h.ListSpeakers)
		protected.POST("/book-session", h.BookSession)
		protected.GET("/sessions", h.GetSessions)
	}
}
