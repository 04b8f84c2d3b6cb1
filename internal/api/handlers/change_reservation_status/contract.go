package change_reservation_status

import (
	"context"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

type ReservationService interface {
	Cancel(ctx context.Context, id int64) (*domain.Reservation, error)
	Confirm(ctx context.Context, id int64) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
