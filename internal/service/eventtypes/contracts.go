package eventtypes

import (
	"context"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CreateEventType(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error)
	ListEventTypesByBusiness(ctx context.Context, businessID int64) ([]*domain.EventType, error)
}

// StaffRepository интерфейс репозитория сотрудников и бизнесов
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
