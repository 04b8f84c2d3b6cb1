package get_facility_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

const (
	msgInvalidFacilityID = "некорректный ID помещения"
	msgInvalidFilter     = "некорректный фильтр"
	msgNotFound          = "помещение не найдено"
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

// Handle GET /api/v1/facilities/{facilityId}/reservations
// Query params: status, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathID(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/reservations - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	filter, filtered, err := handlers.ReservationFilterFromQuery(r)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/reservations - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	var list []*domain.Reservation
	if filtered {
		filter.FacilityID = &facilityID
		list, err = h.service.FindByFilters(r.Context(), filter)
	} else {
		list, err = h.service.FindByFacility(r.Context(), facilityID)
	}
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/reservations - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/reservations - Invalid filter: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter+": "+err.Error())

		default:
			h.logger.Error("GET /facilities/{id}/reservations - Failed to get reservations: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/reservations - Reservations retrieved successfully: facility_id=%d, count=%d",
		facilityID, len(list))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservationList(list))
}
