package get_facility_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/availability"
)

const (
	msgInvalidFacilityID = "некорректный ID помещения"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound          = "помещение не найдено"
)

type Handler struct {
	engine AvailabilityEngine
	logger Logger
}

func NewHandler(engine AvailabilityEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/availability
// Query params: date (required, YYYY-MM-DD, UTC)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathID(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /facilities/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	windows, err := h.engine.FreeWindows(r.Context(), facilityID, date)
	if err != nil {
		if errors.Is(err, availability.ErrFacilityNotFound) {
			h.logger.Warn("GET /facilities/{id}/availability - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /facilities/{id}/availability - Failed to get availability: facility_id=%d, date=%s, error=%v",
			facilityID, dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /facilities/{id}/availability - Availability retrieved: facility_id=%d, date=%s, free=%d",
		facilityID, dateStr, len(windows))
	handlers.RespondJSON(w, http.StatusOK, toResponse(facilityID, date, windows))
}
