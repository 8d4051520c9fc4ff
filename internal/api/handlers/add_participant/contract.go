package add_participant

import (
	"context"

	"github.com/m04kA/SMC-MeetupService/internal/service/events/models"
)

type EventService interface {
	AddParticipant(ctx context.Context, shortCode string, req *models.AddParticipantRequest) (*models.ParticipantResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
