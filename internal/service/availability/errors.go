package availability

import "errors"

var (
	// ErrInvalidInterval возвращается, когда начало интервала не раньше конца
	ErrInvalidInterval = errors.New("start must be before end")

	// ErrFacilityNotFound возвращается, когда помещение не найдено
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
