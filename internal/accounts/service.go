// Package accounts implements the learner side of the booking API:
// signup with email verification, login, profile management, speaker
// discovery, and session booking.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"speakerbook/internal/bookings"
	"speakerbook/internal/calendar"
	"speakerbook/internal/email"
	"speakerbook/internal/otp"
	"speakerbook/internal/password"
	"speakerbook/internal/speakers"
	"speakerbook/internal/token"
)

// OTPValidity defines how long a verification code remains valid
const OTPValidity = 10 * time.Minute

var (
	// ErrInvalidCredentials is returned on unknown email or password mismatch
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotVerified is returned when an unverified account attempts to log in
	ErrNotVerified = errors.New("email not verified")
	// ErrAlreadyVerified is returned when verifying an already verified account
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrInvalidOTP is returned when the submitted code does not match
	ErrInvalidOTP = errors.New("invalid verification code")
	// ErrOTPExpired is returned when the code matched but its expiry has passed
	ErrOTPExpired = errors.New("verification code expired")
	// ErrExternalService is returned when an outbound email or calendar
	// call fails
	ErrExternalService = errors.New("external service error")
	// ErrInvalidDate is returned when the booking date cannot be parsed
	ErrInvalidDate = errors.New("invalid session date")
)

// Service defines the learner service interface
type Service interface {
	Signup(ctx context.Context, req SignupRequest) error
	Login(ctx context.Context, req LoginRequest) (string, error)
	VerifyEmail(ctx context.Context, emailAddr, code string) error
	GetProfile(ctx context.Context, id int64) (*Account, error)
	UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*Account, error)
	ListSpeakers(ctx context.Context) ([]speakers.Speaker, error)
	BookSession(ctx context.Context, learnerID int64, req BookSessionRequest) (*bookings.Session, error)
	GetSessions(ctx context.Context, learnerID int64) ([]bookings.LearnerSession, error)
}

type service struct {
	repo     Repository
	speakers speakers.Repository
	sessions bookings.Repository
	tokens   *token.Manager
	email    email.Sender
	calendar calendar.Sink

	// now is a seam for expiry-boundary tests
	now func() time.Time
}

// NewService creates a new learner service
func NewService(repo Repository, speakerRepo speakers.Repository, sessionRepo bookings.Repository, tokens *token.Manager, sender email.Sender, sink calendar.Sink) Service {
	return &service{
		repo:     repo,
		speakers: speakerRepo,
		sessions: sessionRepo,
		tokens:   tokens,
		email:    sender,
		calendar: sink,
		now:      time.Now,
	}
}

// Signup registers a new unverified learner account, stores a fresh OTP
// with a 10-minute expiry, and dispatches exactly one verification email.
// The code never appears in the API response.
func (s *service) Signup(ctx context.Context, req SignupRequest) error {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code := otp.Generate()
	expiresAt := s.now().Add(OTPValidity)

	account := &Account{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		OTPCode:      &code,
		OTPExpiresAt: &expiresAt,
	}

	if _, err := s.repo.Create(ctx, account); err != nil {
		return err
	}

	if err := s.email.SendVerificationCode(req.Email, code); err != nil {
		slog.Error("failed to send verification email", "recipient", req.Email, "error", err)
		return ErrExternalService
	}

	return nil
}

// Login checks credentials and issues a learner token. Unverified
// accounts cannot log in regardless of password correctness.
func (s *service) Login(ctx context.Context, req LoginRequest) (string, error) {
	account, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !account.IsVerified {
		return "", ErrNotVerified
	}

	if err := password.Check(account.PasswordHash, req.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(token.Identity{Role: token.RoleLearner, ID: account.ID})
}

// VerifyEmail consumes the OTP and marks the account verified. The
// check-then-clear runs as a single conditional update in the store, so
// only one of two concurrent attempts with the same code can succeed;
// the loser sees ErrInvalidOTP.
func (s *service) VerifyEmail(ctx context.Context, emailAddr, code string) error {
	account, err := s.repo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	if account.IsVerified {
		return ErrAlreadyVerified
	}

	if account.OTPCode == nil || account.OTPExpiresAt == nil {
		return ErrInvalidOTP
	}

	now := s.now()
	if *account.OTPCode != code {
		return ErrInvalidOTP
	}
	if !otp.Valid(code, *account.OTPCode, *account.OTPExpiresAt, now) {
		return ErrOTPExpired
	}

	consumed, err := s.repo.ConsumeOTP(ctx, emailAddr, code, now)
	if err != nil {
		return err
	}
	if !consumed {
		// A concurrent verification won the conditional update; the code
		// is spent.
		return ErrInvalidOTP
	}

	return nil
}

func (s *service) GetProfile(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*Account, error) {
	return s.repo.UpdateName(ctx, id, req.FirstName, req.LastName)
}

// ListSpeakers returns all speaker records, unpaginated and unfiltered.
func (s *service) ListSpeakers(ctx context.Context) ([]speakers.Speaker, error) {
	return s.speakers.List(ctx)
}

// BookSession persists a one-hour session between the learner and the
// speaker, then pushes a calendar event with both parties' emails. The
// session row is committed before the calendar call; a calendar failure
// fails the request but does not roll the row back.
func (s *service) BookSession(ctx context.Context, learnerID int64, req BookSessionRequest) (*bookings.Session, error) {
	account, err := s.repo.GetByID(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	speaker, err := s.speakers.GetByID(ctx, req.SpeakerID)
	if err != nil {
		if errors.Is(err, speakers.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	session := &bookings.Session{
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.StartTime.Add(bookings.Duration),
		AccountID: account.ID,
		SpeakerID: speaker.ID,
	}

	created, err := s.sessions.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := s.calendar.CreateEvent(ctx, account.Email, speaker.Email, created.StartTime, created.EndTime); err != nil {
		slog.Error("failed to create calendar event",
			"session_id", created.ID,
			"learner", account.Email,
			"speaker", speaker.Email,
			"error", err,
		)
		return nil, ErrExternalService
	}

	return created, nil
}

func (s *service) GetSessions(ctx context.Context, learnerID int64) ([]bookings.LearnerSession, error) {
	return s.sessions.ListByLearner(ctx, learnerID)
}
