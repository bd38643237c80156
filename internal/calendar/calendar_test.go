package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSink_CreateEvent(t *testing.T) {
	var received event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sink := NewSink(&Config{Mode: "http", APIURL: srv.URL, APIKey: "test-key"})

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	err := sink.CreateEvent(context.Background(), "learner@example.com", "speaker@example.com", start, end)
	require.NoError(t, err)

	assert.Equal(t, start.Format(time.RFC3339), received.Start)
	assert.Equal(t, end.Format(time.RFC3339), received.End)
	require.Len(t, received.Attendees, 2)
	assert.Equal(t, "learner@example.com", received.Attendees[0].Email)
	assert.Equal(t, "speaker@example.com", received.Attendees[1].Email)
}

func TestHTTPSink_CreateEvent_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewSink(&Config{Mode: "http", APIURL: srv.URL})

	start := time.Now()
	err := sink.CreateEvent(context.Background(), "a@x.com", "b@x.com", start, start.Add(time.Hour))
	assert.Error(t, err)
}

func TestLogSink_CreateEvent(t *testing.T) {
	sink := NewSink(&Config{Mode: "log"})

	start := time.Now()
	err := sink.CreateEvent(context.Background(), "a@x.com", "b@x.com", start, start.Add(time.Hour))
	assert.NoError(t, err)
}
