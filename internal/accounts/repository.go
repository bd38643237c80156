package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"speakerbook/internal/database"
)

var (
	// ErrEmailExists is returned when the email is already registered
	ErrEmailExists = errors.New("email already registered")
	// ErrNotFound is returned when no account matches
	ErrNotFound = errors.New("account not found")
)

// Repository defines learner account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	UpdateName(ctx context.Context, id int64, firstName, lastName string) (*Account, error)
	// ConsumeOTP atomically marks the account verified and clears the OTP
	// fields, guarded on the code still matching, the account still being
	// unverified, and the expiry not having passed. It reports whether a
	// row was updated; false means the guard failed, not a store error.
	ConsumeOTP(ctx context.Context, email, code string, now time.Time) (bool, error)
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a new accounts repository
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

const accountColumns = `id, first_name, last_name, email, password_hash, is_verified, otp_code, otp_expires_at, created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	a := &Account{}
	err := row.Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash,
		&a.IsVerified, &a.OTPCode, &a.OTPExpiresAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *pgRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	query := `
		INSERT INTO accounts (first_name, last_name, email, password_hash, is_verified, otp_code, otp_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6, NOW(), NOW())
		RETURNING ` + accountColumns

	created, err := scanAccount(r.db.QueryRow(ctx, query,
		account.FirstName, account.LastName, account.Email, account.PasswordHash,
		account.OTPCode, account.OTPExpiresAt,
	))
	if err != nil {
		if database.IsUniqueViolation(err, "accounts_email_key") {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return created, nil
}

func (r *pgRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	a, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}

func (r *pgRepository) UpdateName(ctx context.Context, id int64, firstName, lastName string) (*Account, error) {
	query := `
		UPDATE accounts
		SET first_name = $1, last_name = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + accountColumns

	a, err := scanAccount(r.db.QueryRow(ctx, query, firstName, lastName, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return a, nil
}

func (r *pgRepository) ConsumeOTP(ctx context.Context, email, code string, now time.Time) (bool, error) {
	// Single conditional UPDATE: the code check and the clear happen in one
	// statement, so a replayed code cannot be consumed twice. The expiry
	// bound is inclusive.
	query := `
		UPDATE accounts
		SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL, updated_at = NOW()
		WHERE email = $1 AND is_verified = FALSE AND otp_code = $2 AND otp_expires_at >= $3
	`

	tag, err := r.db.Exec(ctx, query, email, code, now)
	if err != nil {
		return false, fmt.Errorf("failed to consume otp: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
