package update_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservation   = "некорректные данные бронирования"
	msgNotFound             = "бронирование не найдено"
	msgInvalidTransition    = "недопустимая смена статуса бронирования"
	msgConflict             = "выбранный интервал пересекается с другими бронированиями"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	res, err := h.service.Update(r.Context(), req.ToServiceRequest(reservationID))
	if err != nil {
		var conflict *reservations.SchedulingConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("PUT /reservations/{id} - Scheduling conflict: reservation_id=%d, conflicts=%d",
				reservationID, len(conflict.Conflicts))
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgConflict, handlers.NewConflictDetails(conflict.Conflicts))

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PUT /reservations/{id} - Invalid transition: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Validation failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidReservation+": "+err.Error())

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%d, status=%s",
		reservationID, res.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(res))
}
