package get_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities"
)

const (
	msgInvalidFacilityID = "некорректный ID помещения"
	msgNotFound          = "помещение не найдено"
)

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathID(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	facility, err := h.service.GetByID(r.Context(), facilityID)
	if err != nil {
		if errors.Is(err, facilities.ErrFacilityNotFound) {
			h.logger.Warn("GET /facilities/{id} - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /facilities/{id} - Failed to get facility: facility_id=%d, error=%v", facilityID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, facility)
}
