package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/api/middleware"
	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Create(ctx context.Context, req *models.CreateReservationRequest) (*domain.Reservation, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{"facilityId":1,"startTime":"2025-10-13T10:00:00Z","endTime":"2025-10-13T12:00:00Z","details":{"guests":4}}`

func serve(t *testing.T, svc *serviceMock, userID int64, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(payload))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &serviceMock{}
	start := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateReservationRequest) bool {
		return req.RequesterID == 7 && req.FacilityID == 1 && req.StartTime.Equal(start)
	})).Return(&domain.Reservation{
		ID:          10,
		FacilityID:  1,
		RequesterID: 7,
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		Status:      domain.StatusPending,
	}, nil)

	rec := serve(t, svc, 7, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	svc.AssertExpectations(t)
}

func TestHandle_ConflictCarriesReservations(t *testing.T) {
	svc := &serviceMock{}
	conflict := &reservations.SchedulingConflictError{
		FacilityID: 1,
		Conflicts:  []*domain.Reservation{{ID: 3, FacilityID: 1, Status: domain.StatusConfirmed}},
	}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("wrapped: %w", conflict))

	rec := serve(t, svc, 7, body)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp struct {
		Details handlers.ConflictDetails `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Details.Conflicts, 1)
	assert.Equal(t, int64(3), resp.Details.Conflicts[0].ID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", reservations.ErrFacilityNotFound, http.StatusNotFound},
		{"not reservable", reservations.ErrNotReservable, http.StatusUnprocessableEntity},
		{"validation", fmt.Errorf("%w: start must be before end", reservations.ErrInvalidInput), http.StatusBadRequest},
		{"persistence", fmt.Errorf("%w: boom", reservations.ErrPersistence), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)
			assert.Equal(t, tt.want, serve(t, svc, 7, body).Code)
		})
	}
}

func TestHandle_RejectsBadRequests(t *testing.T) {
	svc := &serviceMock{}

	assert.Equal(t, http.StatusUnauthorized, serve(t, svc, 0, body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, svc, 7, `{"facilityId":`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, svc, 7, `{"facilityId":1,"unknown":true}`).Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
