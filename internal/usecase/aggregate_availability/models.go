package aggregate_availability

import (
	"github.com/m04kA/SMC-MeetupService/internal/domain"
	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// Request модель запроса агрегации доступности
type Request struct {
	ShortCode     string  // Короткий код события
	ParticipantID *string // Текущий участник (nil для незарегистрированного зрителя)
}

// Result результат агрегации: исходные данные календарной сетки.
// Сериализуется в JSON как есть - этим же видом кэшируется.
type Result struct {
	Days                    []string                                    `json:"days"`       // токены колонок в порядке события
	TimeLabels              []string                                    `json:"timeLabels"` // "9:00 AM" ... (пусто для событий на весь день)
	Participants            []domain.ParticipantRef                     `json:"participants"`
	Slots                   map[types.SlotID]*domain.AvailabilityEntry  `json:"slots"`
	CurrentParticipantSlots []types.SlotID                              `json:"currentParticipantSlots"`
}

// Count возвращает число участников, отметивших слот (0 для отсутствующего)
func (r *Result) Count(id types.SlotID) int {
	if entry, ok := r.Slots[id]; ok {
		return entry.Count
	}
	return 0
}

// Intensity возвращает нормированную (0..1) «теплоту» слота относительно
// самого заполненного слота события. 0 для пустой карты и отсутствующих слотов.
func (r *Result) Intensity(id types.SlotID) float64 {
	max := r.maxCount()
	if max == 0 {
		return 0
	}
	return float64(r.Count(id)) / float64(max)
}

// TotalRecords возвращает суммарное число отметок по всем слотам
func (r *Result) TotalRecords() int {
	total := 0
	for _, entry := range r.Slots {
		total += entry.Count
	}
	return total
}

func (r *Result) maxCount() int {
	max := 0
	for _, entry := range r.Slots {
		if entry.Count > max {
			max = entry.Count
		}
	}
	return max
}
