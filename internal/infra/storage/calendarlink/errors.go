package calendarlink

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrLinkExists возвращается, когда бронирование или событие уже связано с календарем
	ErrLinkExists = errors.New("calendarlink.repository: link already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendarlink.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendarlink.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendarlink.repository: failed to scan row")
)

const pgUniqueViolation = "23505"

// classifyInsertError отличает повторную связь от прочих ошибок записи
func classifyInsertError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return ErrLinkExists
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
