package save_selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	eventRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/event"
	participantRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/participant"
	"github.com/m04kA/SMC-MeetupService/pkg/ptr"
	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// UseCase use case сохранения выбора участника (полная перезапись)
type UseCase struct {
	eventRepo       EventRepository
	participantRepo ParticipantRepository
	timeSlotRepo    TimeSlotRepository
	txManager       TransactionManager
	cache           CacheInvalidator // nil, если кэширование выключено
	metrics         Metrics          // nil, если метрики выключены
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	participantRepo ParticipantRepository,
	timeSlotRepo TimeSlotRepository,
	txManager TransactionManager,
	cacheClient CacheInvalidator,
	metricsCollector Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		timeSlotRepo:    timeSlotRepo,
		txManager:       txManager,
		cache:           cacheClient,
		metrics:         metricsCollector,
		logger:          logger,
	}
}

// Execute заменяет выбор участника целиком: старые отметки удаляются,
// новые создаются в одной SERIALIZABLE транзакции.
// Нераспознанные идентификаторы слотов пропускаются с предупреждением,
// остальные сохраняются - систематический перекос формата виден по логам.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SaveSelection: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SaveSelection: event=%s participant=%s slots=%d",
		req.ShortCode, req.ParticipantID, len(req.SlotIDs))

	// 1. Загружаем событие
	event, err := uc.eventRepo.GetByShortCode(ctx, req.ShortCode)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("SaveSelection: event %s not found", req.ShortCode)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("SaveSelection: failed to get event %s: %v", req.ShortCode, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	// 2. Проверяем принадлежность участника событию
	participant, err := uc.participantRepo.GetByID(ctx, req.ParticipantID)
	if err != nil {
		if errors.Is(err, participantRepo.ErrParticipantNotFound) {
			uc.logger.Warn("SaveSelection: participant %s not found", req.ParticipantID)
			return nil, ErrParticipantNotFound
		}
		uc.logger.Error("SaveSelection: failed to get participant %s: %v", req.ParticipantID, err)
		return nil, fmt.Errorf("%w: failed to get participant: %v", ErrInternal, err)
	}
	if participant.EventID != event.ID {
		uc.logger.Warn("SaveSelection: participant %s does not belong to event %s", req.ParticipantID, req.ShortCode)
		return nil, ErrParticipantNotFound
	}

	// 3. Разбираем идентификаторы слотов
	parsed, accepted, skipped := parseSlotIDs(req.SlotIDs)
	if skipped > 0 {
		uc.logger.Warn("SaveSelection: skipped %d invalid slot ids for participant=%s", skipped, req.ParticipantID)
	}

	// 4. Перезаписываем выбор в транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dateIDByToken, err := uc.loadDateIndex(txCtx, event.ID)
		if err != nil {
			return err
		}

		records := make([]*domain.TimeSlotRecord, 0, len(parsed))
		for _, slot := range parsed {
			dateID, ok := dateIDByToken[slot.dayToken]
			if !ok {
				// Токен дня не входит в кандидатные дни - заводим запись дня,
				// как делает операция добавления слотов
				created, err := uc.createDate(txCtx, event.ID, slot.dayToken)
				if err != nil {
					return err
				}
				dateID = created
				dateIDByToken[slot.dayToken] = dateID
			}

			records = append(records, &domain.TimeSlotRecord{
				EventID:       event.ID,
				EventDateID:   dateID,
				ParticipantID: req.ParticipantID,
				Hour:          slot.hour,
				Minute:        slot.minute,
			})
		}

		if err := uc.timeSlotRepo.DeleteByParticipant(txCtx, event.ID, req.ParticipantID); err != nil {
			return err
		}
		return uc.timeSlotRepo.BulkCreate(txCtx, records)
	})
	if err != nil {
		uc.logger.Error("SaveSelection: transaction failed for participant=%s: %v", req.ParticipantID, err)
		return nil, fmt.Errorf("%w: failed to replace selection: %v", ErrInternal, err)
	}

	// 5. Инвалидируем кэш агрегации события
	if uc.cache != nil {
		prefix := fmt.Sprintf("availability:%s:", req.ShortCode)
		if err := uc.cache.DeleteByPrefix(ctx, prefix); err != nil {
			uc.logger.Warn("SaveSelection: cache invalidation failed for event=%s: %v", req.ShortCode, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.AddSlotsSaved(len(parsed))
	}

	types.SortSlotIDs(accepted)
	uc.logger.Info("SaveSelection: saved %d slots for participant=%s (skipped=%d)",
		len(parsed), req.ParticipantID, skipped)

	return &Response{
		Saved:   len(parsed),
		Skipped: skipped,
		SlotIDs: accepted,
	}, nil
}

// loadDateIndex строит индекс токен дня -> id записи кандидатного дня
func (uc *UseCase) loadDateIndex(ctx context.Context, eventID int64) (map[string]int64, error) {
	dates, err := uc.eventRepo.GetDates(ctx, eventID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int64, len(dates))
	for _, d := range dates {
		if token, ok := d.DayToken(); ok {
			index[token] = d.ID
		}
	}
	return index, nil
}

// createDate создает запись кандидатного дня для токена (дата или день недели)
func (uc *UseCase) createDate(ctx context.Context, eventID int64, dayToken string) (int64, error) {
	entry := &domain.EventDate{EventID: eventID}

	if types.WeekdayIndex(dayToken) >= 0 {
		entry.Weekday = ptr.Ptr(dayToken)
	} else {
		date, err := time.Parse(domain.DateFormat, dayToken)
		if err != nil {
			return 0, fmt.Errorf("%w: unexpected day token %q", ErrInternal, dayToken)
		}
		entry.Date = &date
	}

	created, err := uc.eventRepo.CreateDate(ctx, entry)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}
