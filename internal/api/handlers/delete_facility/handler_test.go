package delete_facility

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AmenityService/internal/service/facilities"
)

type fakeService struct {
	err error
	id  int64
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	f.id = id
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, path string) int {
	r := mux.NewRouter()
	r.HandleFunc("/facilities/{facilityId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	return rec.Code
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"deleted", "/facilities/3", nil, http.StatusNoContent},
		{"in use", "/facilities/3", fmt.Errorf("%w: id=3", facilities.ErrFacilityInUse), http.StatusConflict},
		{"not found", "/facilities/3", facilities.ErrFacilityNotFound, http.StatusNotFound},
		{"internal", "/facilities/3", facilities.ErrInternal, http.StatusInternalServerError},
		{"bad id", "/facilities/zero", nil, http.StatusBadRequest},
		{"non-positive id", "/facilities/0", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&fakeService{err: tt.err}, tt.path))
		})
	}
}
