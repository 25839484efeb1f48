package update_schedule

import (
	"context"

	"github.com/tenzan/jikan-pro-ws/internal/service/schedule/models"
)

type ScheduleService interface {
	Put(ctx context.Context, req *models.PutScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
