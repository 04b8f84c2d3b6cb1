package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

// UpdateReservationRequest HTTP request model
// Без status подтвержденное бронирование возвращается в pending
type UpdateReservationRequest struct {
	StartTime time.Time                 `json:"startTime"`
	EndTime   time.Time                 `json:"endTime"`
	Status    *domain.ReservationStatus `json:"status,omitempty"`
	Details   domain.Details            `json:"details,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateReservationRequest) ToServiceRequest(id int64) *models.UpdateReservationRequest {
	return &models.UpdateReservationRequest{
		ID:        id,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
		Details:   r.Details,
	}
}
