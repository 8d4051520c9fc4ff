package types

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrInvalidSlotID возвращается, когда идентификатор слота не удалось разобрать
	ErrInvalidSlotID = errors.New("types: invalid slot id")

	// ErrInvalidDayToken возвращается при некорректном токене дня
	ErrInvalidDayToken = errors.New("types: invalid day token")
)

// weekdayTokens канонический порядок недели (воскресенье -> суббота).
// Токены дней недели в идентификаторах слотов всегда в нижнем регистре.
var weekdayTokens = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

var (
	dateTokenPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slotIDPattern    = regexp.MustCompile(`^(.+)T(\d{2}):(\d{2}):00\.000Z$`)
)

// SlotID канонический идентификатор одного слота сетки: "{dayToken}T{HH}:{MM}:00.000Z".
// dayToken - либо ISO дата "2006-01-02", либо трехбуквенный токен дня недели ("mon").
// Это ключ соединения между выборами участников и картой агрегации, он же
// персистится как выбор участника - формат является межсервисным контрактом.
type SlotID string

// NewSlotID составляет идентификатор слота из токена дня и произвольной метки времени.
// Метка нормализуется через To24Hour; при нераспознанной метке возвращается ошибка,
// и вызывающая сторона обязана пропустить слот, а не генерировать битый идентификатор.
func NewSlotID(dayToken string, timeLabel string) (SlotID, error) {
	if err := ValidateDayToken(dayToken); err != nil {
		return "", err
	}

	ts, err := To24Hour(timeLabel)
	if err != nil {
		return "", err
	}

	return SlotID(fmt.Sprintf("%sT%s:00.000Z", normalizeDayToken(dayToken), ts.String())), nil
}

// NewSlotIDFromClock составляет идентификатор слота из уже 24-часовых часа и минуты.
// Используется агрегацией, где час и минута приходят из хранилища целыми числами.
func NewSlotIDFromClock(dayToken string, hour, minute int) (SlotID, error) {
	if err := ValidateDayToken(dayToken); err != nil {
		return "", err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: clock %02d:%02d out of range", ErrInvalidSlotID, hour, minute)
	}

	return SlotID(fmt.Sprintf("%sT%s:00.000Z", normalizeDayToken(dayToken), NewTimeStringFromClock(hour, minute))), nil
}

// ParseSlotID разбирает идентификатор слота обратно на токен дня, час и минуту
func ParseSlotID(id SlotID) (dayToken string, hour, minute int, err error) {
	m := slotIDPattern.FindStringSubmatch(string(id))
	if m == nil {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlotID, string(id))
	}

	dayToken = m[1]
	if vErr := ValidateDayToken(dayToken); vErr != nil {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlotID, string(id))
	}

	hour, _ = strconv.Atoi(m[2])
	minute, _ = strconv.Atoi(m[3])
	if hour > 23 || minute > 59 {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlotID, string(id))
	}

	return normalizeDayToken(dayToken), hour, minute, nil
}

// ValidateDayToken проверяет, что токен дня - ISO дата или токен дня недели
func ValidateDayToken(token string) error {
	if dateTokenPattern.MatchString(token) {
		return nil
	}
	if WeekdayIndex(token) >= 0 {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidDayToken, token)
}

// WeekdayIndex возвращает позицию токена в каноническом порядке недели
// (0 = sun ... 6 = sat) или -1, если токен не является днем недели.
func WeekdayIndex(token string) int {
	lower := strings.ToLower(token)
	for i, wd := range weekdayTokens {
		if wd == lower {
			return i
		}
	}
	return -1
}

// WeekdayTokens возвращает копию канонического порядка токенов недели
func WeekdayTokens() []string {
	out := make([]string, len(weekdayTokens))
	copy(out, weekdayTokens)
	return out
}

// DayToken возвращает токен дня идентификатора (пустая строка для битого id)
func (s SlotID) DayToken() string {
	day, _, _, err := ParseSlotID(s)
	if err != nil {
		return ""
	}
	return day
}

// String возвращает строковое представление идентификатора
func (s SlotID) String() string {
	return string(s)
}

// SortSlotIDs сортирует идентификаторы слотов хронологически:
// слоты с конкретными датами - по дате и времени, затем слоты с днями недели -
// в каноническом порядке недели и по времени. Битые идентификаторы уходят в конец.
func SortSlotIDs(ids []SlotID) {
	sort.SliceStable(ids, func(i, j int) bool {
		return slotSortKey(ids[i]) < slotSortKey(ids[j])
	})
}

// slotSortKey строит лексикографический ключ сортировки для идентификатора слота.
// Датные токены сравниваются как есть (ISO дата лексикографически хронологична),
// недельные получают префикс, гарантирующий позицию после всех дат.
func slotSortKey(id SlotID) string {
	day, hour, minute, err := ParseSlotID(id)
	if err != nil {
		return "~~" + string(id)
	}

	clock := fmt.Sprintf("%02d:%02d", hour, minute)
	if idx := WeekdayIndex(day); idx >= 0 {
		return fmt.Sprintf("~%d:%s", idx, clock)
	}
	return day + "T" + clock
}

// normalizeDayToken приводит токен дня недели к нижнему регистру, даты не трогает
func normalizeDayToken(token string) string {
	if WeekdayIndex(token) >= 0 {
		return strings.ToLower(token)
	}
	return token
}
