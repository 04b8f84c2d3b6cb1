package list_facilities

import (
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
)

const msgInvalidFilter = "некорректный фильтр"

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

// Handle GET /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /facilities - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter+": "+err.Error())
		return
	}

	result, err := h.service.FindByFilters(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /facilities - Failed to list facilities: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /facilities - Facilities retrieved successfully: count=%d", len(result.Facilities))
	handlers.RespondJSON(w, http.StatusOK, result)
}
