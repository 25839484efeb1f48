package create_appointment

import (
	"time"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

// CustomerInput данные клиента из формы бронирования
type CustomerInput struct {
	Name  string
	Email string
	Phone *string
}

// Request модель запроса на создание записи.
// Ровно один из ServiceID / EventTypeID должен быть задан.
type Request struct {
	StaffID     int64
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала, например "10:00"
	ServiceID   *int64
	EventTypeID *int64
	Customer    CustomerInput
	Notes       *string
}

// Response созданная запись с разрешёнными связями
type Response struct {
	Appointment *domain.Appointment
	Staff       *domain.Staff
	Customer    *domain.Customer
	Service     *domain.Service   // nil для бронирования по типу события
	EventType   *domain.EventType // nil для бронирования по услуге
}
