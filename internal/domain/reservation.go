package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusImported  ReservationStatus = "imported"
)

// IsValid returns true for known statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusImported:
		return true
	}
	return false
}

// allowedTransitions допустимые переходы между статусами
// cancelled - терминальный статус
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusPending, StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPending, StatusConfirmed, StatusCancelled},
	StatusImported:  {StatusImported, StatusConfirmed, StatusCancelled},
}

// CanTransition returns true if a reservation may move from one status to another
func CanTransition(from, to ReservationStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Reservation represents a booked time window of a facility
type Reservation struct {
	ID          int64
	FacilityID  int64
	RequesterID int64
	StartTime   time.Time
	EndTime     time.Time // exclusive
	Status      ReservationStatus
	Cost        *float64 // nil when the facility has no hourly rate
	Details     Details

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still holds its interval
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeConfirmed returns true if the reservation is awaiting confirmation
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending || r.Status == StatusImported
}

// CanBeUpdated returns true if the reservation may still be changed
func (r *Reservation) CanBeUpdated() bool {
	return r.IsActive()
}

// Overlaps returns true if the reservation intersects [start, end)
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return Overlaps(r.StartTime, r.EndTime, start, end)
}

// Window returns the reserved interval
func (r *Reservation) Window() TimeWindow {
	return TimeWindow{Start: r.StartTime, End: r.EndTime}
}

// ExternalEventID returns the id of the calendar event the reservation was imported from
func (r *Reservation) ExternalEventID() (string, bool) {
	id, ok := r.Details[DetailExternalEventID].(string)
	return id, ok && id != ""
}

// Overlaps reports whether half-open intervals [s1, e1) and [s2, e2) intersect.
// Back-to-back intervals (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ReservationFilter фильтр для поиска бронирований
type ReservationFilter struct {
	FacilityID       *int64
	RequesterID      *int64
	Status           *ReservationStatus
	From             *time.Time // бронирование заканчивается после From
	To               *time.Time // бронирование начинается до To
	IncludeCancelled bool
}

// Details дополнительные данные бронирования (JSONB)
type Details map[string]any

// Merge returns a copy of d with keys of other applied on top
func (d Details) Merge(other Details) Details {
	merged := make(Details, len(d)+len(other))
	for k, v := range d {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Value сериализует детали в JSONB
func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// Scan читает детали из JSONB
func (d *Details) Scan(value interface{}) error {
	if value == nil {
		*d = Details{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("details: type assertion to []byte failed")
	}
	return json.Unmarshal(raw, d)
}
