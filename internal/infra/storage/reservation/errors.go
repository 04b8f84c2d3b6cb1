package reservation

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrOverlap возвращается, когда запись нарушает ограничение исключения по интервалу
	ErrOverlap = errors.New("reservation.repository: reservation overlaps an active reservation")

	// ErrFacilityNotFound возвращается, когда бронирование ссылается на несуществующее помещение
	ErrFacilityNotFound = errors.New("reservation.repository: facility not found")

	// ErrSerialization возвращается, когда сериализуемая транзакция не может быть зафиксирована
	ErrSerialization = errors.New("reservation.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

// Коды ошибок PostgreSQL
const (
	pgExclusionViolation  = "23P01"
	pgForeignKeyViolation = "23503"
	pgSerializationFailed = "40001"
)

// classifyExecError превращает ошибки PostgreSQL в ошибки репозитория
func classifyExecError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgExclusionViolation:
			return ErrOverlap
		case pgForeignKeyViolation:
			return ErrFacilityNotFound
		case pgSerializationFailed:
			return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
