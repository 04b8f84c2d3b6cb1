package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		s1, e1 time.Time
		s2, e2 time.Time
		want   bool
	}{
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"partial overlap", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"contained", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"back to back", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"back to back reversed", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"disjoint", at(8, 0), at(9, 0), at(12, 0), at(13, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1), "overlap must be symmetric")
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusImported, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusPending))
	assert.True(t, CanTransition(StatusImported, StatusCancelled))

	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
	assert.False(t, CanTransition(StatusImported, StatusPending))
}

func TestDetailsMerge(t *testing.T) {
	base := Details{"note": "bring towels", "guests": 3}
	merged := base.Merge(Details{"guests": 5, "music": true})

	assert.Equal(t, Details{"note": "bring towels", "guests": 5, "music": true}, merged)
	assert.Equal(t, 3, base["guests"], "merge must not mutate the receiver")
}

func TestDetailsScan(t *testing.T) {
	var d Details
	require.NoError(t, d.Scan([]byte(`{"external_event_id":"evt-1"}`)))

	r := Reservation{Details: d}
	id, ok := r.ExternalEventID()
	assert.True(t, ok)
	assert.Equal(t, "evt-1", id)

	require.NoError(t, d.Scan(nil))
	assert.Empty(t, d)
}

func TestOperatingHours(t *testing.T) {
	hours := OperatingHours{"monday": {Open: "08:00", Close: "22:00"}}
	require.NoError(t, hours.Validate())

	monday := time.Date(2025, 10, 13, 15, 0, 0, 0, time.UTC)
	h, ok := hours.For(monday.Weekday())
	require.True(t, ok)

	from, to, err := h.Bounds(monday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 10, 13, 22, 0, 0, 0, time.UTC), to)

	// Часы читаются в HoursLocation независимо от смещения даты
	shifted := time.Date(2025, 10, 13, 1, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	from, to, err = h.Bounds(shifted)
	require.NoError(t, err)
	assert.True(t, from.Equal(time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)))
	assert.True(t, to.Equal(time.Date(2025, 10, 13, 22, 0, 0, 0, time.UTC)))

	_, ok = hours.For(time.Sunday)
	assert.False(t, ok)

	assert.Error(t, OperatingHours{"funday": {Open: "08:00", Close: "09:00"}}.Validate())
	assert.Error(t, OperatingHours{"monday": {Open: "22:00", Close: "08:00"}}.Validate())
	assert.Error(t, OperatingHours{"monday": {Open: "8am", Close: "09:00"}}.Validate())
}

func TestExternalEventValidate(t *testing.T) {
	loc := "Facility #3"
	ev := ExternalEvent{ID: "evt-1", Title: "Swim", Start: at(9, 0), End: at(10, 0), Location: &loc}
	require.NoError(t, ev.Validate(true))

	noID := ev
	noID.ID = ""
	assert.ErrorIs(t, noID.Validate(true), ErrInvalidExternalEvent)
	assert.NoError(t, noID.Validate(false))

	inverted := ev
	inverted.End = inverted.Start
	assert.ErrorIs(t, inverted.Validate(false), ErrInvalidExternalEvent)

	assert.ErrorIs(t, TimeWindow{Start: at(10, 0), End: at(9, 0)}.Validate(), ErrInvalidTimeWindow)
}
