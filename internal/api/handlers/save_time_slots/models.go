package save_time_slots

import (
	saveSelection "github.com/m04kA/SMC-MeetupService/internal/usecase/save_selection"
)

// SaveTimeSlotsRequest HTTP request model.
// Slots - финальный выбор участника целиком, прежние отметки перезаписываются.
type SaveTimeSlotsRequest struct {
	Slots []string `json:"slots"`
}

// SaveTimeSlotsResponse HTTP response model
type SaveTimeSlotsResponse struct {
	Saved   int      `json:"saved"`
	Skipped int      `json:"skipped,omitempty"`
	Slots   []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *saveSelection.Response) *SaveTimeSlotsResponse {
	slots := make([]string, 0, len(resp.SlotIDs))
	for _, id := range resp.SlotIDs {
		slots = append(slots, id.String())
	}

	return &SaveTimeSlotsResponse{
		Saved:   resp.Saved,
		Skipped: resp.Skipped,
		Slots:   slots,
	}
}
