package compose_grid

import (
	"github.com/m04kA/SMC-MeetupService/internal/domain"
	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// Request модель запроса композиции сетки
type Request struct {
	ShortCode     string
	ParticipantID *string // текущий участник (для предвыбора его слотов)
	Page          int     // запрошенная страница, ограничивается диапазоном
	Capacity      int     // колонок на страницу (3 на узком экране, 7 на широком)
	EditMode      bool    // режим редактирования выбора вместо режима просмотра
}

// Cell одна интерактивная ячейка сетки
type Cell struct {
	SlotID         types.SlotID `json:"slotId"`
	TimeLabel      string       `json:"timeLabel"`
	Selected       bool         `json:"selected"`                 // режим редактирования
	Intensity      float64      `json:"intensity"`                // режим просмотра, 0..1
	AvailableCount int          `json:"availableCount"`           // участников, отметивших слот
	TooltipCount   int          `json:"tooltipCount"`             // подпись тултипа
}

// DayColumn одна колонка дня со всеми ее ячейками
type DayColumn struct {
	Token          string `json:"token"`
	DayOfWeekShort string `json:"dayOfWeekShort"`
	MonthDayShort  string `json:"monthDayShort"`
	Cells          []Cell `json:"cells"`
}

// ColumnGroup визуально слитный блок колонок.
// Между соседними группами рендерится разделитель.
type ColumnGroup struct {
	Columns []DayColumn `json:"columns"`
}

// Grid страница календарной сетки, готовая к отрисовке
type Grid struct {
	Page          int                     `json:"page"`
	TotalPages    int                     `json:"totalPages"`
	HasPagination bool                    `json:"hasPagination"` // скрывать контролы при totalPages <= 1
	TimeLabels    []string                `json:"timeLabels"`
	Groups        []ColumnGroup           `json:"groups"`
	Participants  []domain.ParticipantRef `json:"participants"`
}
