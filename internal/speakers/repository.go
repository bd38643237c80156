package speakers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"speakerbook/internal/database"
)

var (
	// ErrEmailExists is returned when the email is already registered
	ErrEmailExists = errors.New("email already registered")
	// ErrNotFound is returned when no speaker matches
	ErrNotFound = errors.New("speaker not found")
)

// Repository defines speaker persistence operations
type Repository interface {
	Create(ctx context.Context, speaker *Speaker) (*Speaker, error)
	GetByEmail(ctx context.Context, email string) (*Speaker, error)
	GetByID(ctx context.Context, id int64) (*Speaker, error)
	List(ctx context.Context) ([]Speaker, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName string, expertise []string, price decimal.Decimal) (*Speaker, error)
	UpdateAvailability(ctx context.Context, id int64, availability json.RawMessage) error
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a new speakers repository
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

const speakerColumns = `id, first_name, last_name, email, password_hash, expertise, price_per_session::text, availability, created_at, updated_at`

func scanSpeaker(row pgx.Row) (*Speaker, error) {
	sp := &Speaker{}
	var price string
	var availability []byte

	err := row.Scan(
		&sp.ID, &sp.FirstName, &sp.LastName, &sp.Email, &sp.PasswordHash,
		&sp.Expertise, &price, &availability, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sp.PricePerSession, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	if availability != nil {
		sp.Availability = json.RawMessage(availability)
	}

	return sp, nil
}

func (r *pgRepository) Create(ctx context.Context, speaker *Speaker) (*Speaker, error) {
	query := `
		INSERT INTO speakers (first_name, last_name, email, password_hash, expertise, price_per_session, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + speakerColumns

	created, err := scanSpeaker(r.db.QueryRow(ctx, query,
		speaker.FirstName, speaker.LastName, speaker.Email, speaker.PasswordHash,
		speaker.Expertise, speaker.PricePerSession.String(),
	))
	if err != nil {
		if database.IsUniqueViolation(err, "speakers_email_key") {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create speaker: %w", err)
	}

	return created, nil
}

func (r *pgRepository) GetByEmail(ctx context.Context, email string) (*Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE email = $1`

	sp, err := scanSpeaker(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get speaker: %w", err)
	}

	return sp, nil
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (*Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1`

	sp, err := scanSpeaker(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get speaker: %w", err)
	}

	return sp, nil
}

func (r *pgRepository) List(ctx context.Context) ([]Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query speakers: %w", err)
	}
	defer rows.Close()

	speakers := []Speaker{}
	for rows.Next() {
		sp, err := scanSpeaker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan speaker: %w", err)
		}
		speakers = append(speakers, *sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate speakers: %w", err)
	}

	return speakers, nil
}

func (r *pgRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName string, expertise []string, price decimal.Decimal) (*Speaker, error) {
	query := `
		UPDATE speakers
		SET first_name = $1, last_name = $2, expertise = $3, price_per_session = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + speakerColumns

	sp, err := scanSpeaker(r.db.QueryRow(ctx, query, firstName, lastName, expertise, price.String(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update speaker: %w", err)
	}

	return sp, nil
}

func (r *pgRepository) UpdateAvailability(ctx context.Context, id int64, availability json.RawMessage) error {
	query := `UPDATE speakers SET availability = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, []byte(availability), id)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
