package sync_calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityService/internal/api/middleware"
	"github.com/m04kA/SMC-AmenityService/internal/service/calendarsync"
)

type fakeSync struct {
	result    *calendarsync.SyncResult
	err       error
	gotReq    calendarsync.Request
	direction calendarsync.Direction
	calls     int
}

func (f *fakeSync) Sync(_ context.Context, req calendarsync.Request, direction calendarsync.Direction) (*calendarsync.SyncResult, error) {
	f.calls++
	f.gotReq = req
	f.direction = direction
	return f.result, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{"calendarId":"cal-1","windowStart":"2025-10-01T00:00:00Z","windowEnd":"2025-10-31T00:00:00Z"}`

func serve(h *Handler, pathUserID string, callerID int64, payload string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/users/{userId}/calendar-sync", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/users/"+pathUserID+"/calendar-sync", strings.NewReader(payload))
	req = req.WithContext(middleware.WithUserID(req.Context(), callerID))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeSync{result: &calendarsync.SyncResult{
		Export: &calendarsync.ExportResult{
			Created: []calendarsync.ExportedReservation{{ReservationID: 1, ExternalEventID: "evt-1"}},
		},
		Import: &calendarsync.ImportResult{
			Skipped: []calendarsync.SkippedEvent{{ExternalEventID: "x", Reason: calendarsync.SkipUnmappedLocation}},
		},
	}}

	rec := serve(NewHandler(svc, 90*24*time.Hour, nopLogger{}), "7", 7, body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, calendarsync.DirectionBoth, svc.direction)
	assert.Equal(t, int64(7), svc.gotReq.RequesterID)
	assert.Equal(t, "cal-1", svc.gotReq.CalendarID)

	var resp SyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Export)
	assert.Equal(t, "evt-1", resp.Export.Created[0].ExternalEventID)
	assert.Equal(t, []int64{}, resp.Export.Skipped)
	require.NotNil(t, resp.Import)
	assert.Equal(t, calendarsync.SkipUnmappedLocation, resp.Import.Skipped[0].Reason)
}

func TestHandle_ExternalFailureReturnsPartialResult(t *testing.T) {
	svc := &fakeSync{
		result: &calendarsync.SyncResult{Export: &calendarsync.ExportResult{
			Created: []calendarsync.ExportedReservation{{ReservationID: 1, ExternalEventID: "evt-1"}},
		}},
		err: fmt.Errorf("%w: Export - timeout", calendarsync.ErrExternalService),
	}

	rec := serve(NewHandler(svc, 0, nopLogger{}), "7", 7, body)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp struct {
		Details SyncResponse `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Details.Export)
	assert.Len(t, resp.Details.Export.Created, 1)
}

func TestHandle_Rejections(t *testing.T) {
	svc := &fakeSync{err: fmt.Errorf("%w: unknown direction", calendarsync.ErrInvalidInput)}
	h := NewHandler(svc, 7*24*time.Hour, nopLogger{})

	assert.Equal(t, http.StatusForbidden, serve(h, "8", 7, body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "abc", 7, body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "7", 7, body).Code, "window longer than a week")
	assert.Equal(t, 0, svc.calls)

	short := `{"calendarId":"cal-1","direction":"sideways","windowStart":"2025-10-01T00:00:00Z","windowEnd":"2025-10-02T00:00:00Z"}`
	assert.Equal(t, http.StatusBadRequest, serve(h, "7", 7, short).Code)
	assert.Equal(t, calendarsync.Direction("sideways"), svc.direction)

	svc.err = fmt.Errorf("%w: cal-1", calendarsync.ErrCalendarNotFound)
	assert.Equal(t, http.StatusNotFound, serve(h, "7", 7, short).Code)
}

func TestHandle_Disabled(t *testing.T) {
	rec := serve(NewHandler(nil, 0, nopLogger{}), "7", 7, body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
