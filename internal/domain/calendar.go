package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// CalendarDayKind вид колонки календарной сетки
type CalendarDayKind string

const (
	// KindSpecificDate колонка с конкретной календарной датой
	KindSpecificDate CalendarDayKind = "date"

	// KindWeekday колонка с днем недели (событие без привязки к датам)
	KindWeekday CalendarDayKind = "weekday"
)

// CalendarDay is a tagged grid column label. Downstream logic switches on Kind
// instead of re-sniffing the raw token string.
type CalendarDay struct {
	Original       string          // исходный токен дня ("2024-08-14" или "mon")
	Kind           CalendarDayKind
	Date           time.Time // заполнено только для KindSpecificDate
	DayOfWeekShort string    // "Wed"
	MonthDayShort  string    // "Aug 14" (для дней недели совпадает с DayOfWeekShort)
}

// IsAdjacent reports whether other may join this day's visual group.
// Specific dates join when the calendar gap is at most two days, so a single
// skipped day (e.g. a weekend day) still reads as one block. Weekdays always
// group together and never join specific dates.
func (d CalendarDay) IsAdjacent(other CalendarDay) bool {
	if d.Kind != other.Kind {
		return false
	}
	if d.Kind == KindWeekday {
		return true
	}

	diff := other.Date.Sub(d.Date).Hours() / 24
	return diff >= 0 && diff <= 2
}

// ClassifyDayTokens converts raw day tokens into tagged calendar day labels.
// Weekday tokens (sun..sat, case-insensitive) become KindWeekday entries,
// anything else is parsed as an ISO date. Unparsable tokens are dropped.
func ClassifyDayTokens(tokens []string) []CalendarDay {
	days := make([]CalendarDay, 0, len(tokens))

	for _, token := range tokens {
		if idx := types.WeekdayIndex(token); idx >= 0 {
			label := weekdayLabels[idx]
			days = append(days, CalendarDay{
				Original:       token,
				Kind:           KindWeekday,
				DayOfWeekShort: label,
				MonthDayShort:  label,
			})
			continue
		}

		date, err := time.Parse(DateFormat, token)
		if err != nil {
			continue
		}

		days = append(days, CalendarDay{
			Original:       token,
			Kind:           KindSpecificDate,
			Date:           date,
			DayOfWeekShort: date.Format("Mon"),
			MonthDayShort:  date.Format("Jan 2"),
		})
	}

	return days
}

// SortCalendarDays упорядочивает колонки: конкретные даты хронологически,
// дни недели в каноническом порядке недели. Смешанный список не предполагается -
// сортировка стабильна внутри каждого вида.
func SortCalendarDays(days []CalendarDay) {
	sort.SliceStable(days, func(i, j int) bool {
		a, b := days[i], days[j]
		if a.Kind != b.Kind {
			return a.Kind == KindSpecificDate
		}
		if a.Kind == KindSpecificDate {
			return a.Date.Before(b.Date)
		}
		return types.WeekdayIndex(a.Original) < types.WeekdayIndex(b.Original)
	})
}

// weekdayLabels отображаемые метки в каноническом порядке недели (sun..sat)
var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
