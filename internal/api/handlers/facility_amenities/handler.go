package facility_amenities

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities/models"
)

const (
	msgInvalidFacilityID = "некорректный ID помещения"
	msgInvalidAmenity    = "некорректное название удобства"
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

// HandleAdd PUT /api/v1/facilities/{facilityId}/amenities/{name}
// Повторное добавление возвращает помещение без изменений
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PUT /facilities/{id}/amenities/{name}", h.service.AddAmenity)
}

// HandleRemove DELETE /api/v1/facilities/{facilityId}/amenities/{name}
// Удаление отсутствующего удобства возвращает помещение без изменений
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "DELETE /facilities/{id}/amenities/{name}", h.service.RemoveAmenity)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	apply func(ctx context.Context, id int64, name string) (*models.FacilityResponse, error),
) {
	facilityID, err := handlers.PathID(r, "facilityId")
	if err != nil {
		h.logger.Warn("%s - Invalid facility ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}
	name := mux.Vars(r)["name"]

	facility, err := apply(r.Context(), facilityID, name)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("%s - Facility not found: facility_id=%d", route, facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("%s - Invalid amenity: facility_id=%d, name=%q", route, facilityID, name)
			handlers.RespondBadRequest(w, msgInvalidAmenity)

		default:
			h.logger.Error("%s - Failed to change amenities: facility_id=%d, name=%q, error=%v", route, facilityID, name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Amenities updated: facility_id=%d, name=%q", route, facilityID, name)
	handlers.RespondJSON(w, http.StatusOK, facility)
}
