package get_facility

import (
	"context"

	"github.com/m04kA/SMC-AmenityService/internal/service/facilities/models"
)

type FacilityService interface {
	GetByID(ctx context.Context, id int64) (*models.FacilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
