package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tenzan/jikan-pro-ws/internal/api/handlers"
	"github.com/tenzan/jikan-pro-ws/internal/domain"
	getAvailability "github.com/tenzan/jikan-pro-ws/internal/usecase/get_availability"
)

const (
	msgInvalidStaffID    = "некорректный ID сотрудника"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateRequired      = "параметр date обязателен"
	msgSourceRequired    = "укажите ровно один из параметров serviceId или eventTypeId"
	msgInvalidSourceID   = "некорректный ID источника длительности"
	msgStaffNotFound     = "сотрудник не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgEventTypeNotFound = "тип события не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/availability?date=YYYY-MM-DD&serviceId=N|eventTypeId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		h.logger.Warn("GET /staff/{staffId}/availability - Invalid staff ID: %s", vars["staffId"])
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()

	rawDate := query.Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /staff/%d/availability - Invalid date: %s", staffID, rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceID, ok := parseOptionalID(query.Get("serviceId"))
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidSourceID)
		return
	}
	eventTypeID, ok := parseOptionalID(query.Get("eventTypeId"))
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidSourceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		StaffID:     staffID,
		Date:        date,
		ServiceID:   serviceID,
		EventTypeID: eventTypeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrStaffNotFound):
			h.logger.Warn("GET /staff/%d/availability - Staff not found", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /staff/%d/availability - Service not found", staffID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrEventTypeNotFound):
			h.logger.Warn("GET /staff/%d/availability - Event type not found", staffID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /staff/%d/availability - Invalid input: %v", staffID, err)
			handlers.RespondBadRequest(w, msgSourceRequired)

		default:
			h.logger.Error("GET /staff/%d/availability - Failed: %v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/%d/availability - %d slots for date=%s",
		staffID, len(result.AvailableSlots), rawDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseOptionalID парсит опциональный query-параметр с положительным ID
func parseOptionalID(raw string) (*int64, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}
