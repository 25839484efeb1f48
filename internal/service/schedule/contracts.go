package schedule

import (
	"context"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	ListByOwner(ctx context.Context, businessID int64, staffID *int64) ([]*domain.WorkingHoursRule, error)
	Upsert(ctx context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
