package facilities

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда помещение не найдено
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrFacilityInUse возвращается при удалении помещения, на которое ссылаются бронирования
	ErrFacilityInUse = errors.New("facility is referenced by reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
