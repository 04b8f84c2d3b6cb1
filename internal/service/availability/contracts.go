package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// ReservationRepository источник активных бронирований помещения
type ReservationRepository interface {
	FindConflicting(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// FacilityRepository источник часов работы помещения
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
