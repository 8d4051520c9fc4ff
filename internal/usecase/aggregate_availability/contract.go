package aggregate_availability

import (
	"context"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByShortCode(ctx context.Context, shortCode string) (*domain.Event, error)
	GetDates(ctx context.Context, eventID int64) ([]*domain.EventDate, error)
}

// ParticipantRepository интерфейс репозитория участников
type ParticipantRepository interface {
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.Participant, error)
}

// TimeSlotRepository интерфейс репозитория отметок доступности
type TimeSlotRepository interface {
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.TimeSlotRecord, error)
}

// Cache интерфейс кэша результатов агрегации.
// Агрегация остается чистой функцией своих входов - кэш только ускоряет повтор.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
