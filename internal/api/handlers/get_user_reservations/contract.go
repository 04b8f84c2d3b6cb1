package get_user_reservations

import (
	"context"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

type ReservationService interface {
	FindByRequester(ctx context.Context, requesterID int64) ([]*domain.Reservation, error)
	FindByFilters(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
