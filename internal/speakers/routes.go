package speakers

import (
	"github.com/gin-gonic/gin"

	"speakerbook/internal/middleware"
	"speakerbook/internal/token"
)

// RegisterRoutes wires the speaker endpoints onto the given router group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, verifier middleware.Verifier) {
	// Public routes
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.Auth(verifier), middleware.RequireRole(token.RoleSpeaker))
	{
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.GET("/sessions", h.GetSessions)
		protected.PUT("/availability", h.UpdateAvailability)
	}
}
