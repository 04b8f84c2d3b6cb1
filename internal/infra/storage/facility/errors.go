package facility

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда помещение не найдено
	ErrFacilityNotFound = errors.New("facility.repository: facility not found")

	// ErrFacilityInUse возвращается при удалении помещения, на которое ссылаются бронирования
	ErrFacilityInUse = errors.New("facility.repository: facility is referenced by reservations")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("facility.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("facility.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("facility.repository: failed to scan row")
)

// pgForeignKeyViolation код ошибки PostgreSQL foreign_key_violation
const pgForeignKeyViolation = "23503"
