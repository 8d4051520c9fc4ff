package get_event

import (
	"context"

	"github.com/m04kA/SMC-MeetupService/internal/service/events/models"
)

type EventService interface {
	GetByShortCode(ctx context.Context, shortCode string) (*models.EventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
