package compose_grid

import (
	"github.com/m04kA/SMC-MeetupService/internal/selection"
	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// CellSelected вычисляет видимое состояние ячейки в режиме редактирования:
// выбранной считается ячейка из committed ∪ tempSelected за вычетом tempDeselected.
// snap == nil означает отсутствие активного жеста - учитывается только
// зафиксированный выбор. Временные наборы имеют приоритет над зафиксированными.
func CellSelected(committed map[types.SlotID]struct{}, snap *selection.Snapshot, id types.SlotID) bool {
	if snap != nil {
		if _, ok := snap.TempDeselected[id]; ok {
			return false
		}
		if _, ok := snap.TempSelected[id]; ok {
			return true
		}
		_, ok := snap.Committed[id]
		return ok
	}

	_, ok := committed[id]
	return ok
}
