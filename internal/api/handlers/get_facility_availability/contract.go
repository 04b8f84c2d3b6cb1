package get_facility_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

type AvailabilityEngine interface {
	FreeWindows(ctx context.Context, facilityID int64, date time.Time) ([]domain.TimeWindow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
