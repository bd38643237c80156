package speakers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"speakerbook/internal/middleware"
)

// Handler handles speaker-facing HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new speakers handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Signup handles POST /speakers/signup
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	speaker, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "conflict",
				"message": "this email is already registered",
			})
		case errors.Is(err, ErrNegativePrice):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "bad_request",
				"message": "price per session cannot be negative",
			})
		default:
			slog.Error("failed to create speaker", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal",
				"message": "failed to create speaker",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "speaker created successfully",
		"speaker_id": speaker.ID,
	})
}

// Login handles POST /speakers/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	tok, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_credentials",
				"message": "invalid email or password",
			})
			return
		}
		slog.Error("speaker login failed", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal",
			"message": "failed to log in",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: tok})
}

// GetProfile handles GET /speakers/profile
func (h *Handler) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "no identity on request"})
		return
	}

	speaker, err := h.service.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "speaker not found"})
			return
		}
		slog.Error("failed to fetch speaker profile", "speaker_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, speaker)
}

// UpdateProfile handles PUT /speakers/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "no identity on request"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	speaker, err := h.service.UpdateProfile(c.Request.Context(), identity.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "speaker not found"})
		case errors.Is(err, ErrNegativePrice):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "bad_request",
				"message": "price per session cannot be negative",
			})
		default:
			slog.Error("failed to update speaker profile", "speaker_id", identity.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, speaker)
}

// GetSessions handles GET /speakers/sessions
func (h *Handler) GetSessions(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "no identity on request"})
		return
	}

	sessions, err := h.service.GetSessions(c.Request.Context(), identity.ID)
	if err != nil {
		slog.Error("failed to fetch speaker sessions", "speaker_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// UpdateAvailability handles PUT /speakers/availability
func (h *Handler) UpdateAvailability(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "no identity on request"})
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	if err := h.service.UpdateAvailability(c.Request.Context(), identity.ID, req.Availability); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "speaker not found"})
			return
		}
		slog.Error("failed to update availability", "speaker_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to update availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "availability updated successfully"})
}
