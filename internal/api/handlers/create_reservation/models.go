package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	FacilityID int64          `json:"facilityId"`
	StartTime  time.Time      `json:"startTime"` // RFC3339
	EndTime    time.Time      `json:"endTime"`
	Details    domain.Details `json:"details,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateReservationRequest) ToServiceRequest(requesterID int64) *models.CreateReservationRequest {
	return &models.CreateReservationRequest{
		FacilityID:  r.FacilityID,
		RequesterID: requesterID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Details:     r.Details,
	}
}
