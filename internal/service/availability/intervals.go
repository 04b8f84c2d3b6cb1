package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// Conflicting возвращает бронирования, которые пересекаются с [start, end)
// Отмененные бронирования и бронирование excludeID не учитываются.
// Граничащие интервалы (конец одного равен началу другого) не конфликтуют.
//
// Примеры для интервала 10:00-11:00:
// - 09:30-10:30 → конфликт
// - 09:00-10:00 → нет конфликта (граничат)
// - 11:00-12:00 → нет конфликта (граничат)
func Conflicting(reservations []*domain.Reservation, start, end time.Time, excludeID *int64) []*domain.Reservation {
	conflicts := make([]*domain.Reservation, 0)
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.Overlaps(start, end) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}

// freeWindows вычитает занятые интервалы из [from, to)
func freeWindows(from, to time.Time, busy []*domain.Reservation) []domain.TimeWindow {
	sorted := make([]*domain.Reservation, 0, len(busy))
	for _, r := range busy {
		if r.IsActive() && r.Overlaps(from, to) {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	windows := make([]domain.TimeWindow, 0, len(sorted)+1)
	cursor := from
	for _, r := range sorted {
		if r.StartTime.After(cursor) {
			windows = append(windows, domain.TimeWindow{Start: cursor, End: r.StartTime})
		}
		if r.EndTime.After(cursor) {
			cursor = r.EndTime
		}
	}
	if cursor.Before(to) {
		windows = append(windows, domain.TimeWindow{Start: cursor, End: to})
	}

	return windows
}

// dayBounds возвращает часы работы помещения в календарный день date
// Если часы на этот день не заданы, доступны полные сутки в domain.HoursLocation
func dayBounds(facility *domain.Facility, date time.Time) (time.Time, time.Time, error) {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, domain.HoursLocation)

	if hours, ok := facility.OperatingHours.For(day.Weekday()); ok {
		return hours.Bounds(day)
	}

	from := day
	return from, from.AddDate(0, 0, 1), nil
}
