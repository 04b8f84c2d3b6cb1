package update_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities/models"
)

const (
	msgInvalidFacilityID  = "некорректный ID помещения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFacility    = "некорректные данные помещения"
	msgNotFound           = "помещение не найдено"
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

// Handle PUT /api/v1/facilities/{facilityId}
// Тело запроса полностью заменяет изменяемые поля помещения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathID(r, "facilityId")
	if err != nil {
		h.logger.Warn("PUT /facilities/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req models.FacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /facilities/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	facility, err := h.service.Update(r.Context(), facilityID, &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("PUT /facilities/{id} - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("PUT /facilities/{id} - Validation failed: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidFacility+": "+err.Error())

		default:
			h.logger.Error("PUT /facilities/{id} - Failed to update facility: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /facilities/{id} - Facility updated successfully: facility_id=%d", facilityID)
	handlers.RespondJSON(w, http.StatusOK, facility)
}
