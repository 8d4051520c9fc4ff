package aggregate_availability

import (
	"github.com/m04kA/SMC-MeetupService/internal/domain"
	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// buildDayTokens проецирует кандидатные дни события в токены колонок сетки.
// Записи без даты и дня недели отбрасываются, порядок события сохраняется.
func buildDayTokens(dates []*domain.EventDate) []string {
	tokens := make([]string, 0, len(dates))
	for _, d := range dates {
		if token, ok := d.DayToken(); ok {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// buildTimeLabels генерирует подписи временной оси с шагом increment минут,
// от начала окна включительно до конца исключительно.
// Для событий на весь день ось пуста - послотовой детализации нет.
func buildTimeLabels(event *domain.Event) ([]string, error) {
	if !event.HasTimeGrid() {
		return []string{}, nil
	}

	start, err := types.To24Hour(*event.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.To24Hour(*event.EndTime)
	if err != nil {
		return nil, err
	}

	increment := event.IncrementMinutes()

	labels := make([]string, 0)
	for current := start; current.IsBefore(end); {
		labels = append(labels, current.Label12Hour())

		next, err := current.AddMinutes(increment)
		if err != nil {
			// окно уперлось в границу суток
			break
		}
		current = next
	}

	return labels, nil
}

// foldSlots сворачивает сырые отметки в карту слот -> {count, участники}
// и собирает слоты текущего участника для предзаполнения редактора.
// Отметки с неразрешимым днем пропускаются, количество пропусков возвращается
// для диагностики (систематическое расхождение форматов должно быть заметно).
func foldSlots(
	dates []*domain.EventDate,
	records []*domain.TimeSlotRecord,
	participants []*domain.Participant,
	currentParticipantID *string,
) (map[types.SlotID]*domain.AvailabilityEntry, []types.SlotID, int) {
	tokenByDateID := make(map[int64]string, len(dates))
	for _, d := range dates {
		if token, ok := d.DayToken(); ok {
			tokenByDateID[d.ID] = token
		}
	}

	refByParticipantID := make(map[string]domain.ParticipantRef, len(participants))
	for _, p := range participants {
		refByParticipantID[p.ID] = domain.ParticipantRef{
			ID:     p.ID,
			Name:   p.Name,
			Color:  p.Color,
			UserID: p.UserID,
		}
	}

	slots := make(map[types.SlotID]*domain.AvailabilityEntry)
	currentSlots := make([]types.SlotID, 0)
	skipped := 0

	for _, rec := range records {
		token, ok := tokenByDateID[rec.EventDateID]
		if !ok {
			skipped++
			continue
		}

		// Час и минута уже 24-часовые целые - 12-часовой парсер не нужен
		id, err := types.NewSlotIDFromClock(token, rec.Hour, rec.Minute)
		if err != nil {
			skipped++
			continue
		}

		entry, ok := slots[id]
		if !ok {
			entry = &domain.AvailabilityEntry{Participants: make([]domain.ParticipantRef, 0, 1)}
			slots[id] = entry
		}

		entry.Count++
		if ref, ok := refByParticipantID[rec.ParticipantID]; ok {
			entry.Participants = append(entry.Participants, ref)
		} else {
			entry.Participants = append(entry.Participants, domain.ParticipantRef{ID: rec.ParticipantID})
		}

		if currentParticipantID != nil && rec.ParticipantID == *currentParticipantID {
			currentSlots = append(currentSlots, id)
		}
	}

	types.SortSlotIDs(currentSlots)
	return slots, currentSlots, skipped
}

// projectParticipants проецирует участников в ссылки для ответа
func projectParticipants(participants []*domain.Participant) []domain.ParticipantRef {
	refs := make([]domain.ParticipantRef, 0, len(participants))
	for _, p := range participants {
		refs = append(refs, domain.ParticipantRef{
			ID:     p.ID,
			Name:   p.Name,
			Color:  p.Color,
			UserID: p.UserID,
		})
	}
	return refs
}
