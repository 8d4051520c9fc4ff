package compose_grid

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	aggregateAvailability "github.com/m04kA/SMC-MeetupService/internal/usecase/aggregate_availability"
	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// UseCase use case композиции страницы календарной сетки
type UseCase struct {
	aggregator Aggregator
	metrics    Metrics // nil, если метрики выключены
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(aggregator Aggregator, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		aggregator: aggregator,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute составляет запрошенную страницу сетки: агрегация -> классификация
// токенов дней -> сортировка и группировка -> пагинация -> ячейки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Grid, error) {
	if req.ShortCode == "" {
		return nil, fmt.Errorf("%w: shortCode is required", ErrInvalidInput)
	}

	// 1. Агрегация доступности
	agg, err := uc.aggregator.Execute(ctx, &aggregateAvailability.Request{
		ShortCode:     req.ShortCode,
		ParticipantID: req.ParticipantID,
	})
	if err != nil {
		if errors.Is(err, aggregateAvailability.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		uc.logger.Error("ComposeGrid: aggregation failed for event=%s: %v", req.ShortCode, err)
		return nil, fmt.Errorf("%w: aggregation failed: %v", ErrInternal, err)
	}

	// 2. Классификация, группировка, пагинация
	days := domain.ClassifyDayTokens(agg.Days)
	groups := sortAndGroup(days)
	pages := paginate(groups, req.Capacity)

	totalPages := len(pages)
	page := clampPage(req.Page, totalPages)

	grid := &Grid{
		Page:          page,
		TotalPages:    totalPages,
		HasPagination: totalPages > 1,
		TimeLabels:    agg.TimeLabels,
		Groups:        []ColumnGroup{},
		Participants:  agg.Participants,
	}

	if totalPages == 0 {
		uc.logger.Info("ComposeGrid: event=%s has no renderable days", req.ShortCode)
		return grid, nil
	}

	committed := make(map[types.SlotID]struct{}, len(agg.CurrentParticipantSlots))
	for _, id := range agg.CurrentParticipantSlots {
		committed[id] = struct{}{}
	}

	// 3. Ячейки текущей страницы
	cells := 0
	skipped := 0
	for _, group := range regroupPage(pages[page]) {
		columns := make([]DayColumn, 0, len(group))
		for _, day := range group {
			column := DayColumn{
				Token:          day.Original,
				DayOfWeekShort: day.DayOfWeekShort,
				MonthDayShort:  day.MonthDayShort,
				Cells:          make([]Cell, 0, len(agg.TimeLabels)),
			}

			for _, label := range agg.TimeLabels {
				id, err := types.NewSlotID(day.Original, label)
				if err != nil {
					// Слот непредставим - ячейку пропускаем, битый id не генерируем
					skipped++
					continue
				}

				intensity := agg.Intensity(id)
				column.Cells = append(column.Cells, Cell{
					SlotID:         id,
					TimeLabel:      label,
					Selected:       req.EditMode && CellSelected(committed, nil, id),
					Intensity:      intensity,
					AvailableCount: agg.Count(id),
					TooltipCount:   int(math.Round(intensity * float64(agg.Count(id)))),
				})
				cells++
			}

			columns = append(columns, column)
		}
		grid.Groups = append(grid.Groups, ColumnGroup{Columns: columns})
	}

	if skipped > 0 {
		uc.logger.Warn("ComposeGrid: skipped %d unrepresentable cells for event=%s", skipped, req.ShortCode)
	}
	if uc.metrics != nil {
		uc.metrics.AddGridCells(cells)
	}

	uc.logger.Info("ComposeGrid: event=%s page=%d/%d groups=%d cells=%d",
		req.ShortCode, page+1, totalPages, len(grid.Groups), cells)

	return grid, nil
}
