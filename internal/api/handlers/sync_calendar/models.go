package sync_calendar

import (
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/calendarsync"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

// SyncRequest HTTP request model
type SyncRequest struct {
	CalendarID  string    `json:"calendarId"`
	Direction   string    `json:"direction"` // export | import | both, по умолчанию both
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SyncRequest) ToServiceRequest(requesterID int64) (calendarsync.Request, calendarsync.Direction) {
	direction := calendarsync.Direction(r.Direction)
	if direction == "" {
		direction = calendarsync.DirectionBoth
	}
	return calendarsync.Request{
		RequesterID: requesterID,
		CalendarID:  r.CalendarID,
		Window:      domain.TimeWindow{Start: r.WindowStart, End: r.WindowEnd},
	}, direction
}

type ExportedResponse struct {
	ReservationID   int64  `json:"reservationId"`
	ExternalEventID string `json:"externalEventId"`
}

type ExportResponse struct {
	Created []ExportedResponse `json:"created"`
	Skipped []int64            `json:"skipped"`
}

type SkippedEventResponse struct {
	ExternalEventID string `json:"externalEventId"`
	Reason          string `json:"reason"`
}

type ImportResponse struct {
	Imported []models.ReservationResponse `json:"imported"`
	Skipped  []SkippedEventResponse       `json:"skipped"`
}

// SyncResponse результат синхронизации, невыполненное направление опускается
type SyncResponse struct {
	Export *ExportResponse `json:"export,omitempty"`
	Import *ImportResponse `json:"import,omitempty"`
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(result *calendarsync.SyncResult) *SyncResponse {
	resp := &SyncResponse{}
	if result == nil {
		return resp
	}

	if result.Export != nil {
		resp.Export = &ExportResponse{
			Created: make([]ExportedResponse, 0, len(result.Export.Created)),
			Skipped: result.Export.Skipped,
		}
		for _, c := range result.Export.Created {
			resp.Export.Created = append(resp.Export.Created, ExportedResponse{
				ReservationID:   c.ReservationID,
				ExternalEventID: c.ExternalEventID,
			})
		}
		if resp.Export.Skipped == nil {
			resp.Export.Skipped = []int64{}
		}
	}

	if result.Import != nil {
		resp.Import = &ImportResponse{
			Imported: models.FromDomainReservationList(result.Import.Imported).Reservations,
			Skipped:  make([]SkippedEventResponse, 0, len(result.Import.Skipped)),
		}
		for _, s := range result.Import.Skipped {
			resp.Import.Skipped = append(resp.Import.Skipped, SkippedEventResponse{
				ExternalEventID: s.ExternalEventID,
				Reason:          s.Reason,
			})
		}
	}

	return resp
}
