package create_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFacility    = "некорректные данные помещения"
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

// Handle POST /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.FacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	facility, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /facilities - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFacility+": "+err.Error())

		default:
			h.logger.Error("POST /facilities - Failed to create facility: name=%q, error=%v", req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities - Facility created successfully: facility_id=%d", facility.ID)
	handlers.RespondJSON(w, http.StatusCreated, facility)
}
