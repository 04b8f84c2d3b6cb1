package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// FacilityRepository интерфейс репозитория помещений
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	FindByFilters(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	FindByRequester(ctx context.Context, requesterID int64) ([]*domain.Reservation, error)
	FindByFacility(ctx context.Context, facilityID int64) ([]*domain.Reservation, error)
}

// AvailabilityChecker проверка пересечений с активными бронированиями
type AvailabilityChecker interface {
	FindConflicts(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// FacilityLocker блокировка помещения на время проверки и записи
type FacilityLocker interface {
	Lock(ctx context.Context, facilityID int64) (unlock func(), err error)
}

// NotificationSender отправка уведомлений пользователю
type NotificationSender interface {
	Send(ctx context.Context, requesterID int64, title, message string, channels []string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учет результатов операций
type Metrics interface {
	ObserveReservation(operation, outcome string)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider возвращает системное время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
