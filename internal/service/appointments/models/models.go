package models

import (
	"errors"
	"time"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateAppointmentRequest запрос на изменение записи: статус и/или заметки
type UpdateAppointmentRequest struct {
	BusinessID         int64   `json:"-"`
	Status             *string `json:"status,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

// ListAppointmentsRequest запрос списка записей бизнеса с фильтрацией
type ListAppointmentsRequest struct {
	BusinessID       int64      `json:"businessId"`
	StaffID          *int64     `json:"staffId,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		BusinessID:       r.BusinessID,
		StaffID:          r.StaffID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	BusinessID      int64  `json:"businessId"`
	StaffID         int64  `json:"staffId"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	EventTypeID     *int64 `json:"eventTypeId,omitempty"`
	CustomerID      int64  `json:"customerId"`
	Date            string `json:"date"`      // "2026-09-14"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// ToDomainStatus конвертирует строку в domain.AppointmentStatus
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		BusinessID:      a.BusinessID,
		StaffID:         a.StaffID,
		ServiceID:       a.ServiceID,
		EventTypeID:     a.EventTypeID,
		CustomerID:      a.CustomerID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),

		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,

		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if end, err := a.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: out}
}
