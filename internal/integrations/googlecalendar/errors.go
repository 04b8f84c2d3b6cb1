package googlecalendar

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не существует или недоступен сервисному аккаунту
	ErrCalendarNotFound = errors.New("googlecalendar client: calendar not found")

	// ErrUnavailable возвращается, когда Google Calendar не ответил или ответил ошибкой
	ErrUnavailable = errors.New("googlecalendar client: service unavailable")

	// ErrInvalidEvent возвращается, когда событие не прошло валидацию перед отправкой
	ErrInvalidEvent = errors.New("googlecalendar client: invalid event")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googlecalendar client: internal error")
)
