package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"speakerbook/internal/accounts"
	"speakerbook/internal/bookings"
	"speakerbook/internal/config"
	"speakerbook/internal/database"
	"speakerbook/internal/server"
)

func setupTestServer(t *testing.T) (*httptest.Server, database.Service) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("speakerbook_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	databaseURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, databaseURL))

	db, err := database.New(ctx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	cfg := &config.Config{
		Port:           0,
		DatabaseURL:    databaseURL,
		JWTSecret:      "integration-test-secret",
		TokenTTL:       time.Hour,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		AllowedOrigins: []string{"http://localhost:5173"},
	}

	ts := httptest.NewServer(server.New(cfg, db).Handler)
	t.Cleanup(ts.Close)

	return ts, db
}

func postJSON(t *testing.T, url string, payload any, bearer string) (*http.Response, map[string]any) {
	t.Helper()
	return request(t, http.MethodPost, url, payload, bearer)
}

func request(t *testing.T, method, url string, payload any, bearer string) (*http.Response, map[string]any) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp, decoded
}

// storedOTP reads the verification code straight from the store; in
// production it only ever travels by email.
func storedOTP(t *testing.T, db database.Service, email string) string {
	t.Helper()
	a, err := accounts.NewRepository(db).GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, a.OTPCode)
	return *a.OTPCode
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp, body := request(t, http.MethodGet, ts.URL+"/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "up", body["status"])
}

func TestLearnerLifecycle(t *testing.T) {
	ts, db := setupTestServer(t)

	signup := map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"password":   "password1",
	}

	resp, _ := postJSON(t, ts.URL+"/accounts/signup", signup, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// duplicate email is rejected by the store constraint
	resp, body := postJSON(t, ts.URL+"/accounts/signup", signup, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "conflict", body["error"])

	// login is gated until the email is verified
	login := map[string]any{"email": "ada@example.com", "password": "password1"}
	resp, body = postJSON(t, ts.URL+"/accounts/login", login, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "not_verified", body["error"])

	code := storedOTP(t, db, "ada@example.com")

	// a wrong code does not consume the stored one
	resp, body = postJSON(t, ts.URL+"/accounts/verify-email",
		map[string]any{"email": "ada@example.com", "otp": wrongCode(code)}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_otp", body["error"])

	resp, _ = postJSON(t, ts.URL+"/accounts/verify-email",
		map[string]any{"email": "ada@example.com", "otp": code}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// replaying the spent code reports the verified state
	resp, body = postJSON(t, ts.URL+"/accounts/verify-email",
		map[string]any{"email": "ada@example.com", "otp": code}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "already_verified", body["error"])

	resp, body = postJSON(t, ts.URL+"/accounts/login", login, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)

	// profile round trip; secrets never appear in the response
	resp, body = request(t, http.MethodGet, ts.URL+"/accounts/profile", nil, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, body, "otp_code")

	resp, body = request(t, http.MethodPut, ts.URL+"/accounts/profile",
		map[string]any{"first_name": "Augusta", "last_name": "King"}, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Augusta", body["first_name"])
}

func TestSpeakerLifecycleAndBooking(t *testing.T) {
	ts, db := setupTestServer(t)

	// speaker signup needs no verification step
	resp, body := postJSON(t, ts.URL+"/speakers/signup", map[string]any{
		"first_name":        "Sam",
		"last_name":         "Speaker",
		"email":             "sam@example.com",
		"password":          "password1",
		"expertise":         []string{"go", "postgres"},
		"price_per_session": "49.99",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = postJSON(t, ts.URL+"/speakers/login",
		map[string]any{"email": "sam@example.com", "password": "password1"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	speakerTok, _ := body["token"].(string)
	require.NotEmpty(t, speakerTok)

	resp, _ = request(t, http.MethodPut, ts.URL+"/speakers/availability",
		map[string]any{"availability": map[string]any{"weekdays": []string{"mon", "fri"}}}, speakerTok)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// a speaker token cannot reach learner endpoints
	resp, body = request(t, http.MethodGet, ts.URL+"/accounts/profile", nil, speakerTok)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "forbidden", body["error"])

	// register and verify a learner, then book
	resp, _ = postJSON(t, ts.URL+"/accounts/signup", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"password":   "password1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	code := storedOTP(t, db, "ada@example.com")
	resp, _ = postJSON(t, ts.URL+"/accounts/verify-email",
		map[string]any{"email": "ada@example.com", "otp": code}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = postJSON(t, ts.URL+"/accounts/login",
		map[string]any{"email": "ada@example.com", "password": "password1"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	learnerTok, _ := body["token"].(string)

	resp, body = request(t, http.MethodGet, ts.URL+"/accounts/speakers", nil, learnerTok)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	resp, body = postJSON(t, ts.URL+"/accounts/book-session", map[string]any{
		"speaker_id": 1,
		"date":       "2026-09-14",
		"start_time": start.Format(time.RFC3339),
	}, learnerTok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	session, ok := body["session"].(map[string]any)
	require.True(t, ok, "response carries the created session")
	startGot, err := time.Parse(time.RFC3339, session["start_time"].(string))
	require.NoError(t, err)
	endGot, err := time.Parse(time.RFC3339, session["end_time"].(string))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, endGot.Sub(startGot))

	// both parties see the session, each with the other's name joined in
	learnerSessions := decodeSessions(t, ts.URL+"/accounts/sessions", learnerTok)
	require.Len(t, learnerSessions, 1)
	assert.Equal(t, "Sam", learnerSessions[0].SpeakerFirstName)

	speakerSessions := decodeSpeakerSessions(t, ts.URL+"/speakers/sessions", speakerTok)
	require.Len(t, speakerSessions, 1)
	assert.Equal(t, "Ada", speakerSessions[0].LearnerFirstName)

	// booking an unknown speaker is a not-found, not a server error
	resp, body = postJSON(t, ts.URL+"/accounts/book-session", map[string]any{
		"speaker_id": 9999,
		"date":       "2026-09-14",
		"start_time": start.Format(time.RFC3339),
	}, learnerTok)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", body["error"])
}

func decodeSessions(t *testing.T, url, bearer string) []bookings.LearnerSession {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessions []bookings.LearnerSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	return sessions
}

func decodeSpeakerSessions(t *testing.T, url, bearer string) []bookings.SpeakerSession {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessions []bookings.SpeakerSession
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	return sessions
}

// wrongCode flips the last digit so the result is a valid-looking six
// digit code that cannot match.
func wrongCode(code string) string {
	last := code[len(code)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	return fmt.Sprintf("%s%c", code[:len(code)-1], replacement)
}
