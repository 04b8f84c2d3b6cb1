package calendarsync

import (
	"context"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

// ReservationService операции жизненного цикла, нужные синхронизации
type ReservationService interface {
	Import(ctx context.Context, req *models.CreateReservationRequest) (*domain.Reservation, error)
	FindByFilters(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// FacilityRepository источник названий помещений для экспорта
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// CalendarClient клиент внешнего календаря
type CalendarClient interface {
	ListEvents(ctx context.Context, calendarID string, window domain.TimeWindow) ([]domain.ExternalEvent, error)
	CreateEvent(ctx context.Context, calendarID string, ev domain.ExternalEvent) (string, error)
}

// LinkRepository хранилище связей бронирований с событиями календаря
type LinkRepository interface {
	Create(ctx context.Context, link *domain.CalendarLink) error
	FindExternalIDs(ctx context.Context, calendarID string, reservationIDs []int64) (map[int64]string, error)
	ExistsByExternalID(ctx context.Context, calendarID, externalEventID string) (bool, error)
}

// Metrics учет обработанных событий
type Metrics interface {
	ObserveSyncEvent(direction, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
