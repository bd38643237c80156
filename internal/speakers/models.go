package speakers

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Speaker represents a speaker account. Availability is an opaque
// structured value chosen by the speaker; the API stores and returns it
// without interpreting its shape.
type Speaker struct {
	ID              int64           `json:"id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	PasswordHash    string          `json:"-"`
	Expertise       []string        `json:"expertise"`
	PricePerSession decimal.Decimal `json:"price_per_session"`
	Availability    json.RawMessage `json:"availability,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SignupRequest is the request payload for speaker signup
type SignupRequest struct {
	FirstName       string          `json:"first_name" binding:"required"`
	LastName        string          `json:"last_name" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	Password        string          `json:"password" binding:"required,min=8"`
	Expertise       []string        `json:"expertise" binding:"required"`
	PricePerSession decimal.Decimal `json:"price_per_session" binding:"required"`
}

// LoginRequest is the request payload for speaker login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest is the request payload for updating a speaker profile
type UpdateProfileRequest struct {
	FirstName       string          `json:"first_name" binding:"required"`
	LastName        string          `json:"last_name" binding:"required"`
	Expertise       []string        `json:"expertise" binding:"required"`
	PricePerSession decimal.Decimal `json:"price_per_session" binding:"required"`
}

// UpdateAvailabilityRequest is the request payload for overwriting a
// speaker's availability descriptor
type UpdateAvailabilityRequest struct {
	Availability json.RawMessage `json:"availability" binding:"required"`
}
