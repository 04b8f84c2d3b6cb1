package domain

import "time"

// LinkDirection направление, в котором была создана связь с событием календаря
type LinkDirection string

const (
	LinkExported LinkDirection = "export"
	LinkImported LinkDirection = "import"
)

// CalendarLink связывает бронирование с событием внешнего календаря
// Пара (ReservationID, CalendarID) уникальна, как и пара (CalendarID, ExternalEventID)
type CalendarLink struct {
	ReservationID   int64
	CalendarID      string
	ExternalEventID string
	Direction       LinkDirection
	CreatedAt       time.Time
}
