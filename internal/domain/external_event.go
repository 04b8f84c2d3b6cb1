package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidExternalEvent возвращается, когда событие календаря не проходит валидацию
	ErrInvalidExternalEvent = errors.New("invalid external event")

	// ErrInvalidTimeWindow возвращается при некорректном окне времени
	ErrInvalidTimeWindow = errors.New("invalid time window")
)

// ExternalEvent is a third-party calendar entry mapped to or from a Reservation
type ExternalEvent struct {
	ID          string // empty until the calendar assigns one
	Title       string
	Start       time.Time
	End         time.Time
	Description *string
	Location    *string
}

// Validate checks the event before it crosses the calendar boundary.
// requireID is set for events read from the calendar.
func (e ExternalEvent) Validate(requireID bool) error {
	if requireID && strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidExternalEvent)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidExternalEvent)
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidExternalEvent)
	}
	if !e.Start.Before(e.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidExternalEvent)
	}
	return nil
}

// LocationOrEmpty returns the location or an empty string
func (e ExternalEvent) LocationOrEmpty() string {
	if e.Location == nil {
		return ""
	}
	return *e.Location
}

// DescriptionOrEmpty returns the description or an empty string
func (e ExternalEvent) DescriptionOrEmpty() string {
	if e.Description == nil {
		return ""
	}
	return *e.Description
}

// TimeWindow half-open interval [Start, End)
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Validate checks that the window is not empty
func (w TimeWindow) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidTimeWindow)
	}
	if !w.Start.Before(w.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidTimeWindow)
	}
	return nil
}

// String formats the window for logs
func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}
