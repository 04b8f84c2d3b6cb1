package get_facility_availability

import (
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// WindowResponse свободный интервал [start, end)
type WindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityResponse свободные интервалы помещения на дату
type AvailabilityResponse struct {
	FacilityID int64            `json:"facilityId"`
	Date       string           `json:"date"`
	Free       []WindowResponse `json:"free"`
}

func toResponse(facilityID int64, date time.Time, windows []domain.TimeWindow) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		FacilityID: facilityID,
		Date:       date.Format(domain.DateFormat),
		Free:       make([]WindowResponse, 0, len(windows)),
	}
	for _, w := range windows {
		resp.Free = append(resp.Free, WindowResponse{Start: w.Start, End: w.End})
	}
	return resp
}
