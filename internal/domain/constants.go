package domain

// Business validation constants
const (
	MaxFacilityNameLength = 200
	MaxAmenityNameLength  = 100
	MaxCapacity           = 10000
	MaxReservationHours   = 24 * 7 // одна неделя
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ключи Details для бронирований, импортированных из внешнего календаря
const (
	DetailExternalEventID     = "external_event_id"
	DetailExternalCalendarID  = "external_calendar_id"
	DetailExternalDescription = "external_description"
	DetailExternalTitle       = "external_title"
)
