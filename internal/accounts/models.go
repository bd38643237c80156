package accounts

import "time"

// Account represents a learner account. The OTP fields are present only
// while the account is unverified; verification clears them.
type Account struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsVerified   bool       `json:"is_verified"`
	OTPCode      *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SignupRequest is the request payload for learner signup
type SignupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request payload for learner login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token string `json:"token"`
}

// VerifyEmailRequest is the request payload for email verification
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// UpdateProfileRequest is the request payload for updating a learner
// profile. Only the name fields are mutable.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// BookSessionRequest is the request payload for booking a session.
// Date is a calendar day in YYYY-MM-DD form; StartTime is an RFC 3339
// timestamp. The end time is derived, never supplied.
type BookSessionRequest struct {
	SpeakerID int64     `json:"speaker_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
}
