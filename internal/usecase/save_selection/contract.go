package save_selection

import (
	"context"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByShortCode(ctx context.Context, shortCode string) (*domain.Event, error)
	GetDates(ctx context.Context, eventID int64) ([]*domain.EventDate, error)
	CreateDate(ctx context.Context, date *domain.EventDate) (*domain.EventDate, error)
}

// ParticipantRepository интерфейс репозитория участников
type ParticipantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Participant, error)
}

// TimeSlotRepository интерфейс репозитория отметок доступности
type TimeSlotRepository interface {
	DeleteByParticipant(ctx context.Context, eventID int64, participantID string) error
	BulkCreate(ctx context.Context, records []*domain.TimeSlotRecord) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator интерфейс инвалидации кэша агрегации после сохранения
type CacheInvalidator interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Metrics интерфейс счетчиков сохранения
type Metrics interface {
	AddSlotsSaved(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
