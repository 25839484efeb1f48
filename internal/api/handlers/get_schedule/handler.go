package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tenzan/jikan-pro-ws/internal/api/handlers"
	"github.com/tenzan/jikan-pro-ws/internal/api/middleware"
	"github.com/tenzan/jikan-pro-ws/internal/service/schedule"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidStaffID    = "некорректный параметр staffId"
	msgAccessDenied      = "доступ запрещён"
	msgStaffNotFound     = "сотрудник не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/schedule?staffId=N
// Без staffId возвращает дефолтное расписание бизнеса.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authBusinessID, ok := middleware.BusinessID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	if businessID != authBusinessID {
		h.logger.Warn("GET /businesses/%d/schedule - Access denied for business=%d", businessID, authBusinessID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var staffID *int64
	if raw := r.URL.Query().Get("staffId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	result, err := h.service.Get(r.Context(), businessID, staffID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("GET /businesses/%d/schedule - Staff not found: %v", businessID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /businesses/%d/schedule - Staff from another business: %v", businessID, staffID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /businesses/%d/schedule - Failed: %v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/%d/schedule - %d rules", businessID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
