package facility_amenities

import (
	"context"

	"github.com/m04kA/SMC-AmenityService/internal/service/facilities/models"
)

type FacilityService interface {
	AddAmenity(ctx context.Context, id int64, name string) (*models.FacilityResponse, error)
	RemoveAmenity(ctx context.Context, id int64, name string) (*models.FacilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
