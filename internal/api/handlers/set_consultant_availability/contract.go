package set_consultant_availability

import (
	"context"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/schedule/models"
)

type ScheduleService interface {
	SetAvailability(ctx context.Context, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
