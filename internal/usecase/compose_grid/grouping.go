package compose_grid

import "github.com/m04kA/SMC-MeetupService/internal/domain"

// sortAndGroup упорядочивает и группирует колонки сетки:
// конкретные даты сортируются хронологически и разбиваются на максимальные
// прогоны с зазором не больше двух календарных дней (один пропущенный день,
// например выходной, визуально не разрывает блок); дни недели сортируются
// в каноническом порядке недели и идут замыкающей группой.
// Датные и недельные колонки никогда не сливаются в одну группу.
func sortAndGroup(days []domain.CalendarDay) [][]domain.CalendarDay {
	if len(days) == 0 {
		return [][]domain.CalendarDay{}
	}

	specific := make([]domain.CalendarDay, 0, len(days))
	weekdays := make([]domain.CalendarDay, 0)

	for _, d := range days {
		if d.Kind == domain.KindWeekday {
			weekdays = append(weekdays, d)
		} else {
			specific = append(specific, d)
		}
	}

	domain.SortCalendarDays(specific)
	domain.SortCalendarDays(weekdays)

	groups := groupConsecutive(specific)
	if len(weekdays) > 0 {
		groups = append(groups, weekdays)
	}

	return groups
}

// groupConsecutive разбивает уже отсортированные колонки на максимальные
// прогоны смежных дней. Используется и для первичной группировки,
// и для перегруппировки страницы после пагинации.
func groupConsecutive(days []domain.CalendarDay) [][]domain.CalendarDay {
	if len(days) == 0 {
		return [][]domain.CalendarDay{}
	}

	groups := make([][]domain.CalendarDay, 0)
	current := []domain.CalendarDay{days[0]}

	for i := 1; i < len(days); i++ {
		if days[i-1].IsAdjacent(days[i]) {
			current = append(current, days[i])
		} else {
			groups = append(groups, current)
			current = []domain.CalendarDay{days[i]}
		}
	}

	return append(groups, current)
}
