package googlecalendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClientWithHTTP(context.Background(), srv.Client(), srv.URL+"/", time.Second, nopLogger{})
	require.NoError(t, err)
	return client
}

func window() domain.TimeWindow {
	return domain.TimeWindow{
		Start: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
	}
}

func TestListEvents_PaginatesAndSkipsAllDay(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/calendars/primary/events"))
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{
						"id":       "evt-1",
						"summary":  "Swim",
						"location": "Facility #3",
						"start":    map[string]string{"dateTime": "2025-10-15T09:00:00Z"},
						"end":      map[string]string{"dateTime": "2025-10-15T10:00:00Z"},
					},
					{
						"id":      "evt-allday",
						"summary": "Holiday",
						"start":   map[string]string{"date": "2025-10-15"},
						"end":     map[string]string{"date": "2025-10-16"},
					},
				},
				"nextPageToken": "page-2",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id":          "evt-2",
					"summary":     "Party",
					"description": "birthday",
					"start":       map[string]string{"dateTime": "2025-10-15T18:00:00Z"},
					"end":         map[string]string{"dateTime": "2025-10-15T21:00:00Z"},
				},
			},
		})
	})

	events, err := client.ListEvents(context.Background(), "primary", window())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, "Facility #3", events[0].LocationOrEmpty())
	assert.Equal(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC), events[0].Start.UTC())

	assert.Equal(t, "evt-2", events[1].ID)
	assert.Nil(t, events[1].Location)
	assert.Equal(t, "birthday", events[1].DescriptionOrEmpty())
}

func TestListEvents_CalendarNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Not Found"}}`))
	})

	_, err := client.ListEvents(context.Background(), "missing", window())
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestCreateEvent(t *testing.T) {
	var received map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"created-1"}`))
	})

	loc := "Pool"
	id, err := client.CreateEvent(context.Background(), "primary", domain.ExternalEvent{
		Title:    "Reservation #10",
		Start:    time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		Location: &loc,
	})
	require.NoError(t, err)
	assert.Equal(t, "created-1", id)
	assert.Equal(t, "Reservation #10", received["summary"])
	assert.Equal(t, "Pool", received["location"])
}

func TestCreateEvent_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CreateEvent(context.Background(), "primary", domain.ExternalEvent{
		Title: "Reservation #11",
		Start: time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateEvent_InvalidEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.CreateEvent(context.Background(), "primary", domain.ExternalEvent{Title: "no time"})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}
