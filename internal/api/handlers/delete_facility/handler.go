package delete_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities"
)

const (
	msgInvalidFacilityID = "некорректный ID помещения"
	msgNotFound          = "помещение не найдено"
	msgInUse             = "на помещение ссылаются бронирования"
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

// Handle DELETE /api/v1/facilities/{facilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathID(r, "facilityId")
	if err != nil {
		h.logger.Warn("DELETE /facilities/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	if err := h.service.Delete(r.Context(), facilityID); err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("DELETE /facilities/{id} - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, facilities.ErrFacilityInUse):
			h.logger.Warn("DELETE /facilities/{id} - Facility in use: facility_id=%d", facilityID)
			handlers.RespondConflict(w, msgInUse)

		default:
			h.logger.Error("DELETE /facilities/{id} - Failed to delete facility: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /facilities/{id} - Facility deleted successfully: facility_id=%d", facilityID)
	w.WriteHeader(http.StatusNoContent)
}
