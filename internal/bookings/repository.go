// Package bookings owns the sessions table: creation of booked sessions
// and the per-party listing queries.
package bookings

import (
	"context"
	"fmt"

	"speakerbook/internal/database"
)

// Repository defines session persistence operations
type Repository interface {
	Create(ctx context.Context, session *Session) (*Session, error)
	ListByLearner(ctx context.Context, accountID int64) ([]LearnerSession, error)
	ListBySpeaker(ctx context.Context, speakerID int64) ([]SpeakerSession, error)
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a new sessions repository
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

func (r *pgRepository) Create(ctx context.Context, session *Session) (*Session, error) {
	query := `
		INSERT INTO sessions (session_date, start_time, end_time, account_id, speaker_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, session_date, start_time, end_time, account_id, speaker_id, created_at, updated_at
	`

	created := &Session{}
	err := r.db.QueryRow(ctx, query,
		session.Date, session.StartTime, session.EndTime, session.AccountID, session.SpeakerID,
	).Scan(
		&created.ID,
		&created.Date,
		&created.StartTime,
		&created.EndTime,
		&created.AccountID,
		&created.SpeakerID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return created, nil
}

func (r *pgRepository) ListByLearner(ctx context.Context, accountID int64) ([]LearnerSession, error) {
	query := `
		SELECT s.id, s.session_date, s.start_time, s.end_time, s.account_id, s.speaker_id,
		       s.created_at, s.updated_at, sp.first_name, sp.last_name
		FROM sessions s
		JOIN speakers sp ON sp.id = s.speaker_id
		WHERE s.account_id = $1
		ORDER BY s.start_time
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query learner sessions: %w", err)
	}
	defer rows.Close()

	sessions := []LearnerSession{}
	for rows.Next() {
		var s LearnerSession
		err := rows.Scan(
			&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.AccountID, &s.SpeakerID,
			&s.CreatedAt, &s.UpdatedAt, &s.SpeakerFirstName, &s.SpeakerLastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

func (r *pgRepository) ListBySpeaker(ctx context.Context, speakerID int64) ([]SpeakerSession, error) {
	query := `
		SELECT s.id, s.session_date, s.start_time, s.end_time, s.account_id, s.speaker_id,
		       s.created_at, s.updated_at, a.first_name, a.last_name
		FROM sessions s
		JOIN accounts a ON a.id = s.account_id
		WHERE s.speaker_id = $1
		ORDER BY s.start_time
	`

	rows, err := r.db.Query(ctx, query, speakerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query speaker sessions: %w", err)
	}
	defer rows.Close()

	sessions := []SpeakerSession{}
	for rows.Next() {
		var s SpeakerSession
		err := rows.Scan(
			&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.AccountID, &s.SpeakerID,
			&s.CreatedAt, &s.UpdatedAt, &s.LearnerFirstName, &s.LearnerLastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}
