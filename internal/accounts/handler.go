package accounts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"speakerbook/internal/middleware"
)

// Handler handles learner-facing HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new accounts handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Signup handles POST /accounts/signup
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	if err := h.service.Signup(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "conflict",
				"message": "this email is already registered",
			})
		case errors.Is(err, ErrExternalService):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "external_service",
				"message": "failed to send verification email",
			})
		default:
			slog.Error("failed to create account", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal",
				"message": "failed to create account",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "account created, check your email for a verification code",
	})
}

// Login handles POST /accounts/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	tok, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_credentials",
				"message": "invalid email or password",
			})
		case errors.Is(err, ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "not_verified",
				"message": "verify your email before logging in",
			})
		default:
			slog.Error("login failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal",
				"message": "failed to log in",
			})
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: tok})
}

// VerifyEmail handles POST /accounts/verify-email
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	if err := h.service.VerifyEmail(c.Request.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "account not found"})
		case errors.Is(err, ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"error": "already_verified", "message": "email already verified"})
		case errors.Is(err, ErrInvalidOTP):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_otp", "message": "invalid verification code"})
		case errors.Is(err, ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "otp_expired", "message": "verification code expired"})
		default:
			slog.Error("email verification failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to verify email"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email verified successfully"})
}

// GetProfile handles GET /accounts/profile
func (h *Handler) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "no identity on request"})
		return
	}

	account, err := h.service.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "account not found"})
			return
		}
		slog.Error("failed to fetch profile", "account_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateProfile handles PUT /accounts/profile
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

	account, err := h.service.UpdateProfile(c.Request.Context(), identity.ID, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "account not found"})
			return
		}
		slog.Error("failed to update profile", "account_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// ListSpeakers handles GET /accounts/speakers
func (h *Handler) ListSpeakers(c *gin.Context) {
	speakers, err := h.service.ListSpeakers(c.Request.Context())
	if err != nil {
		slog.Error("failed to list speakers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to fetch speakers"})
		return
	}

	c.JSON(http.StatusOK, speakers)
}

// BookSession handles POST /accounts/book-session
func (h *Handler) BookSession(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "no identity on request"})
		return
	}

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	session, err := h.service.BookSession(c.Request.Context(), identity.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "account or speaker not found"})
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "date must be in YYYY-MM-DD form"})
		case errors.Is(err, ErrExternalService):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "external_service",
				"message": "failed to create calendar event",
			})
		default:
			slog.Error("failed to book session", "account_id", identity.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to book session"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "session booked successfully",
		"session": session,
	})
}

// GetSessions handles GET /accounts/sessions
func (h *Handler) GetSessions(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "no identity on request"})
		return
	}

	sessions, err := h.service.GetSessions(c.Request.Context(), identity.ID)
	if err != nil {
		slog.Error("failed to fetch sessions", "account_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}
