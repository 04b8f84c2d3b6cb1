package models

import (
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// CreateReservationRequest запрос на создание бронирования
// Используется и для импорта из календаря
type CreateReservationRequest struct {
	FacilityID  int64
	RequesterID int64
	StartTime   time.Time
	EndTime     time.Time
	Details     domain.Details
}

// Window интервал бронирования
func (r *CreateReservationRequest) Window() domain.TimeWindow {
	return domain.TimeWindow{Start: r.StartTime, End: r.EndTime}
}

// UpdateReservationRequest запрос на изменение бронирования
// Status = nil: подтвержденное или ожидающее бронирование возвращается в pending
// Details объединяются с текущими, новые ключи имеют приоритет
type UpdateReservationRequest struct {
	ID        int64
	StartTime time.Time
	EndTime   time.Time
	Status    *domain.ReservationStatus
	Details   domain.Details
}

// Window интервал бронирования
func (r *UpdateReservationRequest) Window() domain.TimeWindow {
	return domain.TimeWindow{Start: r.StartTime, End: r.EndTime}
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64                    `json:"id"`
	FacilityID  int64                    `json:"facilityId"`
	RequesterID int64                    `json:"requesterId"`
	StartTime   time.Time                `json:"startTime"`
	EndTime     time.Time                `json:"endTime"`
	Status      domain.ReservationStatus `json:"status"`
	Cost        *float64                 `json:"cost,omitempty"`
	Details     domain.Details           `json:"details"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	details := r.Details
	if details == nil {
		details = domain.Details{}
	}

	return &ReservationResponse{
		ID:          r.ID,
		FacilityID:  r.FacilityID,
		RequesterID: r.RequesterID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Status:      r.Status,
		Cost:        r.Cost,
		Details:     details,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}
