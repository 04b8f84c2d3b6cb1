package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Facility represents a shared amenity of the property (pool, party room, gym...)
type Facility struct {
	ID             int64
	Name           string
	Description    string
	Category       string
	Capacity       int
	Area           *float64 // square meters
	Amenities      []string
	IsReservable   bool
	HourlyRate     *float64 // nil = free of charge
	OperatingHours OperatingHours
	Restrictions   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAmenity returns true if the facility already lists the amenity
func (f *Facility) HasAmenity(name string) bool {
	for _, a := range f.Amenities {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// FacilityFilter фильтр для поиска помещений
type FacilityFilter struct {
	Category     *string
	IsReservable *bool
	MinCapacity  *int
	Amenity      *string // помещение должно содержать удобство
	NameContains *string
}

// DayHours часы работы помещения в течение одного дня, формат "HH:MM"
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Bounds returns open and close instants of the calendar day of date.
// Hours are interpreted in HoursLocation whatever offset date carries.
func (h DayHours) Bounds(date time.Time) (time.Time, time.Time, error) {
	open, err := time.Parse(TimeFormat, h.Open)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid open time %q: %w", h.Open, err)
	}
	closeAt, err := time.Parse(TimeFormat, h.Close)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid close time %q: %w", h.Close, err)
	}

	y, m, d := date.Date()
	from := time.Date(y, m, d, open.Hour(), open.Minute(), 0, 0, HoursLocation)
	to := time.Date(y, m, d, closeAt.Hour(), closeAt.Minute(), 0, 0, HoursLocation)
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("open time %s is not before close time %s", h.Open, h.Close)
	}

	return from, to, nil
}

// HoursLocation часовой пояс, в котором заданы часы работы всех помещений
var HoursLocation = time.UTC

// OperatingHours таблица часов работы, ключ - день недели в нижнем регистре ("monday")
// Отсутствие дня означает, что ограничений на этот день не задано
type OperatingHours map[string]DayHours

// For returns the hours declared for the weekday
func (o OperatingHours) For(day time.Weekday) (DayHours, bool) {
	if o == nil {
		return DayHours{}, false
	}
	h, ok := o[strings.ToLower(day.String())]
	return h, ok
}

// Validate checks weekday keys and time format of every entry
func (o OperatingHours) Validate() error {
	for day, hours := range o {
		if _, ok := weekdays[day]; !ok {
			return fmt.Errorf("unknown weekday %q", day)
		}
		if _, _, err := hours.Bounds(time.Now()); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

// Value сериализует таблицу в JSONB
func (o OperatingHours) Value() (driver.Value, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(o)
}

// Scan читает таблицу из JSONB
func (o *OperatingHours) Scan(value interface{}) error {
	if value == nil {
		*o = OperatingHours{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("operating hours: type assertion to []byte failed")
	}
	return json.Unmarshal(raw, o)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}
