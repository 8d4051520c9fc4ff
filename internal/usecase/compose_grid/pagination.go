package compose_grid

import "github.com/m04kA/SMC-MeetupService/internal/domain"

// paginate нарезает сплющенную последовательность колонок на страницы
// фиксированной емкости. Каждая страница затем перегруппировывается заново
// (см. regroupPage): граница страницы может разрезать визуальную группу.
func paginate(groups [][]domain.CalendarDay, capacity int) [][]domain.CalendarDay {
	if capacity < 1 {
		capacity = domain.DefaultPageCapacity
	}

	flat := make([]domain.CalendarDay, 0)
	for _, group := range groups {
		flat = append(flat, group...)
	}

	pages := make([][]domain.CalendarDay, 0)
	for i := 0; i < len(flat); i += capacity {
		end := i + capacity
		if end > len(flat) {
			end = len(flat)
		}
		pages = append(pages, flat[i:end])
	}

	return pages
}

// regroupPage восстанавливает визуальные группы внутри одной страницы
// тем же правилом смежности, что и первичная группировка
func regroupPage(page []domain.CalendarDay) [][]domain.CalendarDay {
	return groupConsecutive(page)
}

// clampPage ограничивает номер страницы диапазоном [0, totalPages-1].
// Выход за диапазон не является ошибкой - индекс молча приводится к границе.
func clampPage(page, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	if page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}
