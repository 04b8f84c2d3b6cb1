package change_reservation_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgInvalidTransition    = "недопустимая смена статуса бронирования"
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

// HandleCancel PATCH /api/v1/reservations/{reservationId}/cancel
// Повторная отмена возвращает бронирование без изменений
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /reservations/{id}/cancel", h.service.Cancel)
}

// HandleConfirm PATCH /api/v1/reservations/{reservationId}/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /reservations/{id}/confirm", h.service.Confirm)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	apply func(ctx context.Context, id int64) (*domain.Reservation, error),
) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("%s - Invalid reservation ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	res, err := apply(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("%s - Reservation not found: reservation_id=%d", route, reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: reservation_id=%d, error=%v", route, reservationID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("%s - Failed to change status: reservation_id=%d, error=%v", route, reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Reservation status changed: reservation_id=%d, status=%s", route, reservationID, res.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(res))
}
