package create_event_type

import (
	"context"

	"github.com/tenzan/jikan-pro-ws/internal/service/eventtypes/models"
)

type EventTypesService interface {
	Create(ctx context.Context, req *models.CreateEventTypeRequest) (*models.EventTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
