// Package speakers implements the speaker side of the booking API:
// signup, login, profile and availability management, and the speaker's
// view of booked sessions. Speaker signup has no email verification step;
// that gate applies to learner accounts only.
package speakers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"speakerbook/internal/bookings"
	"speakerbook/internal/password"
	"speakerbook/internal/token"
)

var (
	// ErrInvalidCredentials is returned on unknown email or password mismatch
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNegativePrice is returned when the session price is below zero
	ErrNegativePrice = errors.New("price per session cannot be negative")
)

// Service defines the speaker service interface
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*Speaker, error)
	Login(ctx context.Context, req LoginRequest) (string, error)
	GetProfile(ctx context.Context, id int64) (*Speaker, error)
	UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*Speaker, error)
	GetSessions(ctx context.Context, id int64) ([]bookings.SpeakerSession, error)
	UpdateAvailability(ctx context.Context, id int64, availability json.RawMessage) error
}

type service struct {
	repo     Repository
	sessions bookings.Repository
	tokens   *token.Manager
}

// NewService creates a new speaker service
func NewService(repo Repository, sessions bookings.Repository, tokens *token.Manager) Service {
	return &service{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Signup registers a new speaker account. Duplicate emails are rejected
// with ErrEmailExists; uniqueness is enforced by the store's constraint,
// not a preceding existence check.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*Speaker, error) {
	if req.PricePerSession.IsNegative() {
		return nil, ErrNegativePrice
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	speaker := &Speaker{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		PasswordHash:    hash,
		Expertise:       req.Expertise,
		PricePerSession: req.PricePerSession,
	}

	return s.repo.Create(ctx, speaker)
}

// Login checks credentials and issues a speaker token
func (s *service) Login(ctx context.Context, req LoginRequest) (string, error) {
	speaker, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := password.Check(speaker.PasswordHash, req.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(token.Identity{Role: token.RoleSpeaker, ID: speaker.ID})
}

func (s *service) GetProfile(ctx context.Context, id int64) (*Speaker, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*Speaker, error) {
	if req.PricePerSession.IsNegative() {
		return nil, ErrNegativePrice
	}
	return s.repo.UpdateProfile(ctx, id, req.FirstName, req.LastName, req.Expertise, req.PricePerSession)
}

func (s *service) GetSessions(ctx context.Context, id int64) ([]bookings.SpeakerSession, error) {
	return s.sessions.ListBySpeaker(ctx, id)
}

// UpdateAvailability overwrites the speaker's availability descriptor.
// The value is opaque to the API; no shape validation is performed.
func (s *service) UpdateAvailability(ctx context.Context, id int64, availability json.RawMessage) error {
	return s.repo.UpdateAvailability(ctx, id, availability)
}
