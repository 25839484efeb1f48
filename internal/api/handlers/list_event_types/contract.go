package list_event_types

import (
	"context"

	"github.com/tenzan/jikan-pro-ws/internal/service/eventtypes/models"
)

type EventTypesService interface {
	ListPublic(ctx context.Context, businessID int64) (*models.EventTypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
