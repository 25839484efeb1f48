package get_availability

import (
	"context"
	"time"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников и бизнесов
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
}

// CatalogRepository интерфейс репозитория каталога (услуги, типы событий)
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetEventTypeByID(ctx context.Context, id int64) (*domain.EventType, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetForStaffDay(ctx context.Context, businessID, staffID int64, dayOfWeek int) (*domain.WorkingHoursRule, error)
}

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	FindActiveByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
