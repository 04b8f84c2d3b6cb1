package sync_calendar

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
	"github.com/m04kA/SMC-AmenityService/internal/api/middleware"
	"github.com/m04kA/SMC-AmenityService/internal/service/calendarsync"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidSync        = "некорректные параметры синхронизации"
	msgCalendarNotFound   = "календарь не найден"
	msgExternalService    = "внешний календарь недоступен, синхронизация прервана"
	msgSyncDisabled       = "синхронизация с календарем не настроена"
)

type Handler struct {
	service   SyncService
	maxWindow time.Duration
	logger    Logger
}

// NewHandler создает обработчик синхронизации
// service = nil означает, что календарь не настроен: обработчик отвечает 503
func NewHandler(service SyncService, maxWindow time.Duration, logger Logger) *Handler {
	return &Handler{
		service:   service,
		maxWindow: maxWindow,
		logger:    logger,
	}
}

// Handle POST /api/v1/users/{userId}/calendar-sync
// Пользователь синхронизирует только свои бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		h.logger.Warn("POST /users/{userId}/calendar-sync - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /users/{userId}/calendar-sync - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if callerID != userID {
		h.logger.Warn("POST /users/{userId}/calendar-sync - Access denied: user_id=%d, caller_id=%d", userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	if h.service == nil {
		h.logger.Warn("POST /users/{userId}/calendar-sync - Calendar sync is disabled")
		handlers.RespondError(w, http.StatusServiceUnavailable, msgSyncDisabled)
		return
	}

	var req SyncRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/{userId}/calendar-sync - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, direction := req.ToServiceRequest(userID)
	if h.maxWindow > 0 && serviceReq.Window.End.Sub(serviceReq.Window.Start) > h.maxWindow {
		h.logger.Warn("POST /users/{userId}/calendar-sync - Window too long: user_id=%d, window=%s", userID, serviceReq.Window)
		handlers.RespondBadRequest(w, fmt.Sprintf("%s: окно синхронизации больше %s", msgInvalidSync, h.maxWindow))
		return
	}

	result, err := h.service.Sync(r.Context(), serviceReq, direction)
	if err != nil {
		switch {
		case errors.Is(err, calendarsync.ErrInvalidInput):
			h.logger.Warn("POST /users/{userId}/calendar-sync - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidSync+": "+err.Error())

		case errors.Is(err, calendarsync.ErrCalendarNotFound):
			h.logger.Warn("POST /users/{userId}/calendar-sync - Calendar not found: user_id=%d, calendar_id=%s",
				userID, req.CalendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, calendarsync.ErrExternalService):
			h.logger.Error("POST /users/{userId}/calendar-sync - External calendar failed: user_id=%d, calendar_id=%s, error=%v",
				userID, req.CalendarID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadGateway, msgExternalService, FromServiceResult(result))

		default:
			h.logger.Error("POST /users/{userId}/calendar-sync - Failed to sync: user_id=%d, calendar_id=%s, error=%v",
				userID, req.CalendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/{userId}/calendar-sync - Sync completed: user_id=%d, calendar_id=%s, direction=%s",
		userID, req.CalendarID, direction)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
