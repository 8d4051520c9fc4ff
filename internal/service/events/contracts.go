package events

import (
	"context"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event, dates []*domain.EventDate) (*domain.Event, error)
	GetByShortCode(ctx context.Context, shortCode string) (*domain.Event, error)
	GetDates(ctx context.Context, eventID int64) ([]*domain.EventDate, error)
}

// ParticipantRepository интерфейс репозитория участников
type ParticipantRepository interface {
	Create(ctx context.Context, p *domain.Participant) (*domain.Participant, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.Participant, error)
}

// TimeSlotRepository интерфейс репозитория отметок доступности
type TimeSlotRepository interface {
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.TimeSlotRecord, error)
}

// ShortCodeGenerator интерфейс генератора коротких кодов событий
type ShortCodeGenerator interface {
	Generate() (string, error)
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
