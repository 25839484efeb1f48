package get_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tenzan/jikan-pro-ws/internal/api/handlers"
	"github.com/tenzan/jikan-pro-ws/internal/api/middleware"
	"github.com/tenzan/jikan-pro-ws/internal/service/appointments"
)

const (
	msgInvalidID           = "некорректный ID записи"
	msgAppointmentNotFound = "запись не найдена"
	msgAccessDenied        = "доступ запрещён"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("GET /appointments/{id} - Invalid ID: %s", vars["id"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id, businessID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/%d - Not found", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments/%d - Access denied for business=%d", id, businessID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /appointments/%d - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/%d - OK for business=%d", id, businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
