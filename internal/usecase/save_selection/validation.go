package save_selection

import (
	"fmt"

	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

const maxSlotsPerSave = 10000

// parsedSlot разобранный идентификатор слота
type parsedSlot struct {
	dayToken string
	hour     int
	minute   int
}

// validateRequest проверяет корректность запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ShortCode == "" {
		return fmt.Errorf("%w: shortCode is required", ErrInvalidInput)
	}
	if req.ParticipantID == "" {
		return fmt.Errorf("%w: participantID is required", ErrInvalidInput)
	}
	if len(req.SlotIDs) > maxSlotsPerSave {
		return fmt.Errorf("%w: too many slots (%d > %d)", ErrInvalidInput, len(req.SlotIDs), maxSlotsPerSave)
	}
	return nil
}

// parseSlotIDs разбирает идентификаторы слотов, дедуплицируя повторы.
// Нераспознанные идентификаторы не валят запрос, а подсчитываются как skipped.
func parseSlotIDs(raw []string) (parsed []parsedSlot, accepted []types.SlotID, skipped int) {
	parsed = make([]parsedSlot, 0, len(raw))
	accepted = make([]types.SlotID, 0, len(raw))
	seen := make(map[types.SlotID]struct{}, len(raw))

	for _, s := range raw {
		id := types.SlotID(s)
		day, hour, minute, err := types.ParseSlotID(id)
		if err != nil {
			skipped++
			continue
		}

		canonical, err := types.NewSlotIDFromClock(day, hour, minute)
		if err != nil {
			skipped++
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}

		parsed = append(parsed, parsedSlot{dayToken: day, hour: hour, minute: minute})
		accepted = append(accepted, canonical)
	}

	return parsed, accepted, skipped
}
