package handlers

import (
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// ReservationFilterFromQuery разбирает фильтры списка бронирований
// Query params: status, from, to (RFC3339). Второе значение false, если ни один фильтр не задан.
func ReservationFilterFromQuery(r *http.Request) (domain.ReservationFilter, bool, error) {
	var filter domain.ReservationFilter

	from, err := QueryTime(r, "from")
	if err != nil {
		return filter, false, fmt.Errorf("from: %w", err)
	}
	to, err := QueryTime(r, "to")
	if err != nil {
		return filter, false, fmt.Errorf("to: %w", err)
	}
	filter.From = from
	filter.To = to

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.ReservationStatus(s)
		filter.Status = &status
	}

	return filter, from != nil || to != nil || filter.Status != nil, nil
}
