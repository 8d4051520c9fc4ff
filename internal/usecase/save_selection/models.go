package save_selection

import "github.com/m04kA/SMC-MeetupService/pkg/types"

// Request модель запроса полной перезаписи выбора участника.
// SlotIDs - финальный зафиксированный выбор целиком, не инкремент.
type Request struct {
	ShortCode     string
	ParticipantID string
	SlotIDs       []string
}

// Response модель ответа: принятый выбор после нормализации
type Response struct {
	Saved   int            // количество сохраненных слотов
	Skipped int            // количество пропущенных нераспознанных идентификаторов
	SlotIDs []types.SlotID // сохраненный выбор, отсортированный хронологически
}
