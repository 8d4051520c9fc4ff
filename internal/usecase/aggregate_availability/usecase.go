package aggregate_availability

import (
	"context"
	"errors"
	"fmt"

	eventRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/event"
	"github.com/m04kA/SMC-MeetupService/pkg/cache"
)

// UseCase use case агрегации доступности участников события
type UseCase struct {
	eventRepo       EventRepository
	participantRepo ParticipantRepository
	timeSlotRepo    TimeSlotRepository
	cache           Cache // nil, если кэширование выключено
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	participantRepo ParticipantRepository,
	timeSlotRepo TimeSlotRepository,
	cacheClient Cache,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		timeSlotRepo:    timeSlotRepo,
		cache:           cacheClient,
		logger:          logger,
	}
}

// Execute выполняет агрегацию доступности.
// Пустое событие (без отметок или без дней) - нормальное состояние,
// возвращаются пустые структуры, а не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req.ShortCode == "" {
		return nil, fmt.Errorf("%w: shortCode is required", ErrInvalidInput)
	}

	cacheKey := uc.cacheKey(req)
	if uc.cache != nil {
		var cached Result
		if err := uc.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			uc.logger.Info("AggregateAvailability: cache hit for event=%s", req.ShortCode)
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("AggregateAvailability: cache read failed for event=%s: %v", req.ShortCode, err)
		}
	}

	// 1. Загружаем событие
	event, err := uc.eventRepo.GetByShortCode(ctx, req.ShortCode)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("AggregateAvailability: event %s not found", req.ShortCode)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("AggregateAvailability: failed to get event %s: %v", req.ShortCode, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	// 2. Загружаем кандидатные дни, участников и сырые отметки
	dates, err := uc.eventRepo.GetDates(ctx, event.ID)
	if err != nil {
		uc.logger.Error("AggregateAvailability: failed to get dates for event=%s: %v", req.ShortCode, err)
		return nil, fmt.Errorf("%w: failed to get event dates: %v", ErrInternal, err)
	}

	participants, err := uc.participantRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		uc.logger.Error("AggregateAvailability: failed to get participants for event=%s: %v", req.ShortCode, err)
		return nil, fmt.Errorf("%w: failed to get participants: %v", ErrInternal, err)
	}

	records, err := uc.timeSlotRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		uc.logger.Error("AggregateAvailability: failed to get time slots for event=%s: %v", req.ShortCode, err)
		return nil, fmt.Errorf("%w: failed to get time slots: %v", ErrInternal, err)
	}

	// 3. Чистая агрегация
	timeLabels, err := buildTimeLabels(event)
	if err != nil {
		uc.logger.Error("AggregateAvailability: invalid time window for event=%s: %v", req.ShortCode, err)
		return nil, fmt.Errorf("%w: invalid event time window: %v", ErrInternal, err)
	}

	slots, currentSlots, skipped := foldSlots(dates, records, participants, req.ParticipantID)
	if skipped > 0 {
		uc.logger.Warn("AggregateAvailability: skipped %d unresolvable slot records for event=%s", skipped, req.ShortCode)
	}

	result := &Result{
		Days:                    buildDayTokens(dates),
		TimeLabels:              timeLabels,
		Participants:            projectParticipants(participants),
		Slots:                   slots,
		CurrentParticipantSlots: currentSlots,
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, result); err != nil {
			uc.logger.Warn("AggregateAvailability: cache write failed for event=%s: %v", req.ShortCode, err)
		}
	}

	uc.logger.Info("AggregateAvailability: event=%s days=%d labels=%d participants=%d slots=%d",
		req.ShortCode, len(result.Days), len(result.TimeLabels), len(result.Participants), len(result.Slots))

	return result, nil
}

// cacheKey строит ключ кэша. Текущий участник входит в ключ, так как
// CurrentParticipantSlots зависят от него.
func (uc *UseCase) cacheKey(req *Request) string {
	participant := "-"
	if req.ParticipantID != nil {
		participant = *req.ParticipantID
	}
	return fmt.Sprintf("availability:%s:%s", req.ShortCode, participant)
}
