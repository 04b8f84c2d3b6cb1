package reservations

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrFacilityNotFound возвращается, когда помещение не найдено
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrNotReservable возвращается, когда помещение закрыто для бронирования
	ErrNotReservable = errors.New("facility is not reservable")

	// ErrSchedulingConflict возвращается, когда интервал пересекается с активными бронированиями
	// Подробности доступны через errors.As(err, *SchedulingConflictError)
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPersistence возвращается при ошибках хранилища, транзакция при этом откатывается
	ErrPersistence = errors.New("service: persistence error")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// SchedulingConflictError содержит бронирования, с которыми пересекается запрошенный интервал
type SchedulingConflictError struct {
	FacilityID int64
	Start      time.Time
	End        time.Time
	Conflicts  []*domain.Reservation
}

func (e *SchedulingConflictError) Error() string {
	ids := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		ids = append(ids, fmt.Sprintf("%d", c.ID))
	}
	return fmt.Sprintf("%s: facility=%d window=[%s, %s) conflicts with reservations [%s]",
		ErrSchedulingConflict, e.FacilityID,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339),
		strings.Join(ids, ", "))
}

func (e *SchedulingConflictError) Is(target error) bool {
	return target == ErrSchedulingConflict
}
