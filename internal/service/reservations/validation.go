package reservations

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// validateWindow проверяет интервал бронирования
func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	if end.Sub(start) > domain.MaxReservationHours*time.Hour {
		return fmt.Errorf("%w: reservation exceeds %d hours", ErrInvalidInput, domain.MaxReservationHours)
	}
	return nil
}

// validateOperatingHours проверяет, что бронирование укладывается в часы работы помещения
// в день начала. Если часы на этот день не заданы, подходит любой интервал.
// День недели и часы определяются по моменту времени в domain.HoursLocation,
// смещение, с которым клиент передал время, не влияет на результат.
func validateOperatingHours(facility *domain.Facility, start, end time.Time) error {
	start, end = start.In(domain.HoursLocation), end.In(domain.HoursLocation)

	hours, ok := facility.OperatingHours.For(start.Weekday())
	if !ok {
		return nil
	}

	open, closeAt, err := hours.Bounds(start)
	if err != nil {
		return fmt.Errorf("%w: facility id=%d has invalid operating hours: %v", ErrInternal, facility.ID, err)
	}

	if start.Before(open) || end.After(closeAt) {
		return fmt.Errorf("%w: facility %q is open %s-%s on %s",
			ErrInvalidInput, facility.Name, hours.Open, hours.Close, start.Weekday())
	}
	return nil
}
