package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	eventRepo "github.com/m04kA/SMC-MeetupService/internal/infra/storage/event"
	"github.com/m04kA/SMC-MeetupService/internal/service/events/models"
	"github.com/m04kA/SMC-MeetupService/pkg/ptr"
	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// shortCodeAttempts количество попыток подобрать свободный короткий код
const shortCodeAttempts = 5

// Service сервис для работы с событиями и участниками
type Service struct {
	eventRepo       EventRepository
	participantRepo ParticipantRepository
	timeSlotRepo    TimeSlotRepository
	codeGen         ShortCodeGenerator
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(
	eventRepo EventRepository,
	participantRepo ParticipantRepository,
	timeSlotRepo TimeSlotRepository,
	codeGen ShortCodeGenerator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		timeSlotRepo:    timeSlotRepo,
		codeGen:         codeGen,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает событие вместе с кандидатными днями и участником-создателем.
// Короткий код генерируется с повторными попытками на случай коллизии.
func (s *Service) Create(ctx context.Context, req *models.CreateEventRequest) (*models.CreateEventResponse, error) {
	event, dates, err := s.buildEvent(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("Create: creating event name=%q days=%d fullDay=%v",
		req.Name, len(dates), event.IsFullDayEvent)

	creator := &domain.Participant{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(req.CreatorName),
		Color:  domain.ColorForIndex(0),
		UserID: req.CreatorUserID,
	}

	var created *domain.Event
	for attempt := 0; attempt < shortCodeAttempts; attempt++ {
		code, err := s.codeGen.Generate()
		if err != nil {
			s.logger.Error("Create: short code generation failed: %v", err)
			return nil, fmt.Errorf("%w: Create - generate short code: %v", ErrInternal, err)
		}
		event.ShortCode = code

		err = s.txManager.Do(ctx, func(txCtx context.Context) error {
			ev, err := s.eventRepo.Create(txCtx, event, dates)
			if err != nil {
				return err
			}
			creator.EventID = ev.ID
			_, err = s.participantRepo.Create(txCtx, creator)
			return err
		})
		if err == nil {
			created = event
			break
		}
		if errors.Is(err, eventRepo.ErrShortCodeTaken) {
			s.logger.Warn("Create: short code %s already taken, retrying", code)
			continue
		}
		s.logger.Error("Create: failed to create event: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	if created == nil {
		s.logger.Error("Create: exhausted %d short code attempts", shortCodeAttempts)
		return nil, ErrShortCodeExhausted
	}

	s.logger.Info("Create: created event shortCode=%s id=%d", created.ShortCode, created.ID)

	return &models.CreateEventResponse{
		Event:   *models.FromDomainEvent(created, dates, []*domain.Participant{creator}, nil),
		Creator: models.FromDomainParticipant(creator),
	}, nil
}

// GetByShortCode получает событие с кандидатными днями, списком участников
// и сырыми отметками доступности
func (s *Service) GetByShortCode(ctx context.Context, shortCode string) (*models.EventResponse, error) {
	if shortCode == "" {
		return nil, fmt.Errorf("%w: shortCode is required", ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("GetByShortCode: event %s not found", shortCode)
			return nil, ErrEventNotFound
		}
		s.logger.Error("GetByShortCode: repository error for event %s: %v", shortCode, err)
		return nil, fmt.Errorf("%w: GetByShortCode - repository error: %v", ErrInternal, err)
	}

	dates, err := s.eventRepo.GetDates(ctx, event.ID)
	if err != nil {
		s.logger.Error("GetByShortCode: failed to get dates for event %s: %v", shortCode, err)
		return nil, fmt.Errorf("%w: GetByShortCode - failed to get dates: %v", ErrInternal, err)
	}

	participants, err := s.participantRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("GetByShortCode: failed to list participants for event %s: %v", shortCode, err)
		return nil, fmt.Errorf("%w: GetByShortCode - failed to list participants: %v", ErrInternal, err)
	}

	records, err := s.timeSlotRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("GetByShortCode: failed to list time slots for event %s: %v", shortCode, err)
		return nil, fmt.Errorf("%w: GetByShortCode - failed to list time slots: %v", ErrInternal, err)
	}

	s.logger.Info("GetByShortCode: fetched event %s, days=%d participants=%d slots=%d",
		shortCode, len(dates), len(participants), len(records))

	return models.FromDomainEvent(event, dates, participants, records), nil
}

// AddParticipant присоединяет нового участника к событию.
// Цвет аватара назначается детерминированно по позиции в ростере.
func (s *Service) AddParticipant(ctx context.Context, shortCode string, req *models.AddParticipantRequest) (*models.ParticipantResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxParticipantNameLen {
		return nil, fmt.Errorf("%w: participant name is too long", ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("AddParticipant: event %s not found", shortCode)
			return nil, ErrEventNotFound
		}
		s.logger.Error("AddParticipant: repository error for event %s: %v", shortCode, err)
		return nil, fmt.Errorf("%w: AddParticipant - repository error: %v", ErrInternal, err)
	}

	roster, err := s.participantRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("AddParticipant: failed to list participants for event %s: %v", shortCode, err)
		return nil, fmt.Errorf("%w: AddParticipant - failed to list participants: %v", ErrInternal, err)
	}

	participant := &domain.Participant{
		ID:      uuid.NewString(),
		EventID: event.ID,
		Name:    name,
		Color:   domain.ColorForIndex(len(roster)),
		UserID:  req.UserID,
	}

	created, err := s.participantRepo.Create(ctx, participant)
	if err != nil {
		s.logger.Error("AddParticipant: failed to create participant for event %s: %v", shortCode, err)
		return nil, fmt.Errorf("%w: AddParticipant - failed to create participant: %v", ErrInternal, err)
	}

	s.logger.Info("AddParticipant: added participant %s to event %s", created.ID, shortCode)

	resp := models.FromDomainParticipant(created)
	return &resp, nil
}

// buildEvent валидирует запрос и собирает domain модели события и его дней
func (s *Service) buildEvent(req *models.CreateEventRequest) (*domain.Event, []*domain.EventDate, error) {
	if req == nil {
		return nil, nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxEventNameLength {
		return nil, nil, fmt.Errorf("%w: event name is too long", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CreatorName) == "" {
		return nil, nil, fmt.Errorf("%w: creator name is required", ErrInvalidInput)
	}
	if len(req.Days) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}
	if len(req.Days) > domain.MaxEventDates {
		return nil, nil, fmt.Errorf("%w: too many days (%d > %d)", ErrInvalidInput, len(req.Days), domain.MaxEventDates)
	}

	dates, err := buildDates(req.Days)
	if err != nil {
		return nil, nil, err
	}

	event := &domain.Event{
		Name:           name,
		IsFullDayEvent: req.IsFullDayEvent,
		Timezone:       req.Timezone,
		CreatorID:      req.CreatorUserID,
	}

	if !req.IsFullDayEvent {
		start, end, err := normalizeTimeRange(req.StartTime, req.EndTime)
		if err != nil {
			return nil, nil, err
		}
		event.StartTime = start
		event.EndTime = end

		increment := domain.DefaultTimeIncrementMinutes
		if req.TimeIncrement != nil {
			increment = req.TimeIncrement.Minutes()
		}
		if increment < domain.MinTimeIncrementMinutes || increment > domain.MaxTimeIncrementMinutes {
			return nil, nil, fmt.Errorf("%w: time increment %d is out of range", ErrInvalidInput, increment)
		}
		event.TimeIncrementMinutes = ptr.Ptr(increment)
	}

	return event, dates, nil
}

// buildDates конвертирует токены дней в записи кандидатных дней.
// Дубликаты токенов отбрасываются, некорректный токен валит запрос целиком.
func buildDates(tokens []string) ([]*domain.EventDate, error) {
	dates := make([]*domain.EventDate, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))

	for _, raw := range tokens {
		token := strings.ToLower(strings.TrimSpace(raw))
		if err := types.ValidateDayToken(token); err != nil {
			return nil, fmt.Errorf("%w: invalid day token %q", ErrInvalidInput, raw)
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}

		entry := &domain.EventDate{}
		if types.WeekdayIndex(token) >= 0 {
			entry.Weekday = ptr.Ptr(token)
		} else {
			date, err := time.Parse(domain.DateFormat, token)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, raw)
			}
			entry.Date = &date
		}
		dates = append(dates, entry)
	}

	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}
	return dates, nil
}

// normalizeTimeRange валидирует и сохраняет исходные 12-часовые метки диапазона.
// Метки хранятся как есть, нормализация выполняется при построении оси сетки.
func normalizeTimeRange(startLabel, endLabel *string) (*string, *string, error) {
	if startLabel == nil || endLabel == nil {
		return nil, nil, fmt.Errorf("%w: startTime and endTime are required for timed events", ErrInvalidInput)
	}

	start, err := types.To24Hour(*startLabel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, *startLabel)
	}
	end, err := types.To24Hour(*endLabel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid endTime %q", ErrInvalidInput, *endLabel)
	}
	if !start.IsBefore(end) {
		return nil, nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return startLabel, endLabel, nil
}
