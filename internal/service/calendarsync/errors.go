package calendarsync

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах синхронизации
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCalendarNotFound возвращается, когда внешний календарь не найден
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrExternalService возвращается при ошибке внешнего календаря, текущий пакет событий прерывается
	ErrExternalService = errors.New("external calendar service error")

	// ErrPersistence возвращается при ошибках хранилища
	ErrPersistence = errors.New("calendarsync: persistence error")
)
