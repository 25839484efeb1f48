package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/tenzan/jikan-pro-ws/internal/api/handlers"
	"github.com/tenzan/jikan-pro-ws/internal/domain"
	createAppointment "github.com/tenzan/jikan-pro-ws/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgStaffNotFound        = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgEventTypeNotFound    = "тип события не найден"
	msgOutsideWorkingHours  = "время вне рабочих часов сотрудника"
	msgInvalidBookingDate   = "некорректная дата записи"
	msgTooLateToBook        = "слишком поздно для записи на этот слот"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if _, dateErr := time.Parse(domain.DateFormat, req.Date); dateErr != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: staff=%d, date=%s, start=%s",
				req.StaffID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: staff=%d", req.StaffID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrEventTypeNotFound):
			h.logger.Warn("POST /appointments - Event type not found: staff=%d", req.StaffID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: staff=%d, date=%s, start=%s",
				req.StaffID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: staff=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: staff=%d, date=%s, start=%s",
				req.StaffID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: staff=%d, error=%v",
				req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, staff=%d, status=%s",
		result.Appointment.ID, req.StaffID, result.Appointment.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
