package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/api/middleware"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidReservation = "некорректные данные бронирования"
	msgFacilityNotFound   = "помещение не найдено"
	msgNotReservable      = "помещение недоступно для бронирования"
	msgConflict           = "выбранный интервал пересекается с другими бронированиями"
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

// Handle POST /api/v1/reservations
// Бронирование создается от имени пользователя из X-User-ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	res, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		var conflict *reservations.SchedulingConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /reservations - Scheduling conflict: facility_id=%d, user_id=%d, conflicts=%d",
				req.FacilityID, userID, len(conflict.Conflicts))
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgConflict, handlers.NewConflictDetails(conflict.Conflicts))

		case errors.Is(err, reservations.ErrSchedulingConflict):
			h.logger.Warn("POST /reservations - Scheduling conflict: facility_id=%d, user_id=%d", req.FacilityID, userID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, reservations.ErrFacilityNotFound):
			h.logger.Warn("POST /reservations - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, reservations.ErrNotReservable):
			h.logger.Warn("POST /reservations - Facility not reservable: facility_id=%d", req.FacilityID)
			handlers.RespondUnprocessable(w, msgNotReservable)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Validation failed: facility_id=%d, user_id=%d, error=%v",
				req.FacilityID, userID, err)
			handlers.RespondBadRequest(w, msgInvalidReservation+": "+err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: facility_id=%d, user_id=%d, error=%v",
				req.FacilityID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, facility_id=%d, user_id=%d",
		res.ID, res.FacilityID, userID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainReservation(res))
}
