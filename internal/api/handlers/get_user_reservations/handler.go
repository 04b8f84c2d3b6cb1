package get_user_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidFilter = "некорректный фильтр"
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

// Handle GET /api/v1/users/{userId}/reservations
// Query params: status, from, to (опционально). Без фильтров возвращаются все бронирования, включая отменённые.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/reservations - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	filter, filtered, err := handlers.ReservationFilterFromQuery(r)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/reservations - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	var list []*domain.Reservation
	if filtered {
		filter.RequesterID = &userID
		list, err = h.service.FindByFilters(r.Context(), filter)
	} else {
		list, err = h.service.FindByRequester(r.Context(), userID)
	}
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /users/{userId}/reservations - Invalid filter: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter+": "+err.Error())
			return
		}
		h.logger.Error("GET /users/{userId}/reservations - Failed to get reservations: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/reservations - Reservations retrieved successfully: user_id=%d, count=%d",
		userID, len(list))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservationList(list))
}
