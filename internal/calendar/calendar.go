// Package calendar creates calendar events for booked sessions on an
// external calendar service. Delivery is synchronous: a failure here is
// surfaced to the caller, which reports the booking as failed.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Sink defines the interface for pushing session events to a calendar
type Sink interface {
	CreateEvent(ctx context.Context, learnerEmail, speakerEmail string, start, end time.Time) error
}

// Config holds calendar client configuration
type Config struct {
	Mode   string // "log" or "http"
	APIURL string
	APIKey string
}

// NewConfig creates a new calendar configuration from environment variables
func NewConfig() *Config {
	return &Config{
		Mode:   getEnvOrDefault("CALENDAR_MODE", "log"),
		APIURL: os.Getenv("CALENDAR_API_URL"),
		APIKey: os.Getenv("CALENDAR_API_KEY"),
	}
}

// NewSink creates a new calendar sink based on configuration
func NewSink(cfg *Config) Sink {
	if cfg.Mode == "http" {
		return &httpSink{
			config: cfg,
			client: &http.Client{Timeout: 10 * time.Second},
		}
	}
	return &logSink{}
}

// logSink records events to the log instead of an external calendar
// (development mode)
type logSink struct{}

func (s *logSink) CreateEvent(ctx context.Context, learnerEmail, speakerEmail string, start, end time.Time) error {
	slog.Info("calendar event created",
		"learner", learnerEmail,
		"speaker", speakerEmail,
		"start", start.Format(time.RFC3339),
		"end", end.Format(time.RFC3339),
	)
	return nil
}

// httpSink posts events to an external calendar API
type httpSink struct {
	config *Config
	client *http.Client
}

type attendee struct {
	Email string `json:"email"`
}

type event struct {
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	Attendees   []attendee `json:"attendees"`
}

func (s *httpSink) CreateEvent(ctx context.Context, learnerEmail, speakerEmail string, start, end time.Time) error {
	payload := event{
		Summary:     "Speaker Session",
		Description: "A session with a speaker",
		Start:       start.Format(time.RFC3339),
		End:         end.Format(time.RFC3339),
		Attendees:   []attendee{{Email: learnerEmail}, {Email: speakerEmail}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode calendar event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build calendar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("calendar service returned status %d", resp.StatusCode)
	}

	slog.Info("calendar event created", "learner", learnerEmail, "speaker", speakerEmail)
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
