package handlers

import (
	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

// ConflictDetails подробности ответа 409: бронирования, с которыми пересекается интервал
type ConflictDetails struct {
	Conflicts []models.ReservationResponse `json:"conflicts"`
}

// NewConflictDetails конвертирует конфликтующие бронирования в тело ответа
func NewConflictDetails(conflicts []*domain.Reservation) *ConflictDetails {
	return &ConflictDetails{Conflicts: models.FromDomainReservationList(conflicts).Reservations}
}
