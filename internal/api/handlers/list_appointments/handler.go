package list_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tenzan/jikan-pro-ws/internal/api/handlers"
	"github.com/tenzan/jikan-pro-ws/internal/api/middleware"
	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/internal/service/appointments"
	"github.com/tenzan/jikan-pro-ws/internal/service/appointments/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgAccessDenied      = "доступ запрещён"
	msgInvalidStaffID    = "некорректный параметр staffId"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput      = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/businesses/{businessId}/appointments
// Query: staffId, startDate, endDate, status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authBusinessID, ok := middleware.BusinessID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		h.logger.Warn("GET /businesses/{businessId}/appointments - Invalid business ID: %s", vars["businessId"])
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	if businessID != authBusinessID {
		h.logger.Warn("GET /businesses/%d/appointments - Access denied for business=%d", businessID, authBusinessID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	query := r.URL.Query()

	req := &models.ListAppointmentsRequest{
		BusinessID:       businessID,
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /businesses/%d/appointments - Invalid input: %v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /businesses/%d/appointments - Failed: %v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/%d/appointments - %d appointments", businessID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
