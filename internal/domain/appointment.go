package domain

import (
	"time"

	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// ValidStatuses all known appointment statuses
var ValidStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// statusTransitions allowed status transitions.
// PENDING -> CONFIRMED | CANCELLED
// CONFIRMED -> COMPLETED | CANCELLED
// CANCELLED and COMPLETED are terminal.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {},
	StatusCompleted: {},
}

// IsValid returns true if the status is a known appointment status
func (s AppointmentStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransitionTo returns true if the transition from s to target is allowed
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Appointment represents a booked appointment in the system.
// Exactly one of ServiceID / EventTypeID is set and determines how the
// duration and buffers were resolved at booking time.
type Appointment struct {
	ID          int64
	BusinessID  int64
	StaffID     int64
	ServiceID   *int64
	EventTypeID *int64
	CustomerID  int64

	Date            time.Time        // booking date, no time part
	StartTime       types.TimeString // e.g. "10:00"
	DurationMinutes int
	Status          AppointmentStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the end of the appointment interval.
// The interval is half-open: [StartTime, EndTime).
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// BlocksSlot returns true if this appointment occupies its interval for
// overlap checks. Everything except CANCELLED blocks, including COMPLETED:
// a past appointment still occupies its historical slot when that date is
// queried again.
func (a *Appointment) BlocksSlot() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsTerminal returns true if the status can no longer change
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// AppointmentsFilter фильтр для выборки бронирований бизнеса
type AppointmentsFilter struct {
	BusinessID       int64              // Обязательный параметр
	StaffID          *int64             // Фильтр по сотруднику (опционально)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
}
