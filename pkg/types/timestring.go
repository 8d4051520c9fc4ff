package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat возвращается, когда строку времени не удалось распознать
	ErrInvalidTimeFormat = errors.New("types: invalid time format")

	// ErrInvalidIncrement возвращается, когда шаг сетки не удалось распознать
	ErrInvalidIncrement = errors.New("types: invalid time increment")
)

// twelveHourPattern матчит 12-часовые метки вида "9 am", "12:30 pm", "8:05PM"
var twelveHourPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)

// incrementPattern извлекает первое целое число из строки длительности ("30 min", "1h")
var incrementPattern = regexp.MustCompile(`\d+`)

// TimeString каноническое время суток в 24-часовом формате "HH:MM".
// Используется как компонент идентификатора слота и для генерации временной оси сетки.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromClock создает TimeString из 24-часовых целых часа и минуты.
// Значения не валидируются - вызывающая сторона отвечает за диапазоны.
func NewTimeStringFromClock(hour, minute int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", hour, minute))
}

// To24Hour нормализует произвольную метку времени к канонической 24-часовой форме.
// Принимает 12-часовые метки ("9 am", "12:30 pm") и уже 24-часовые ("14:00", "14:00:00").
// Правило конвертации стандартное: 12 am -> 00, 12 pm -> 12, остальные pm +12.
// Возвращает ErrInvalidTimeFormat, если не подошел ни один вариант разбора.
func To24Hour(label string) (TimeString, error) {
	input := strings.ToLower(strings.TrimSpace(label))
	if input == "" {
		return "", fmt.Errorf("%w: empty label", ErrInvalidTimeFormat)
	}

	if m := twelveHourPattern.FindStringSubmatch(input); m != nil {
		hours, err := strconv.Atoi(m[1])
		if err != nil || hours < 1 || hours > 12 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, label)
		}

		minutes := 0
		if m[2] != "" {
			minutes, err = strconv.Atoi(m[2])
			if err != nil || minutes > 59 {
				return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, label)
			}
		}

		period := m[3]
		if period == "pm" && hours != 12 {
			hours += 12
		} else if period == "am" && hours == 12 {
			hours = 0
		}

		return NewTimeStringFromClock(hours, minutes), nil
	}

	// Fallback: строка уже может быть в 24-часовом формате
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, input); err == nil {
			return NewTimeString(t), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, label)
}

// ParseIncrement извлекает шаг сетки в минутах из произвольной строки длительности.
// "30 min" -> 30, "60" -> 60. Возвращает ErrInvalidIncrement для пустых и нечисловых значений.
func ParseIncrement(value string) (int, error) {
	token := incrementPattern.FindString(value)
	if token == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIncrement, value)
	}

	minutes, err := strconv.Atoi(token)
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIncrement, value)
	}

	return minutes, nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// Clock возвращает час и минуту как целые числа.
// Для некорректного TimeString возвращает (0, 0, error).
func (t TimeString) Clock() (int, int, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// Label12Hour возвращает отображаемую 12-часовую метку вида "9:00 AM".
// Используется для подписей временной оси сетки.
func (t TimeString) Label12Hour() string {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return string(t)
	}
	return parsed.Format("3:04 PM")
}

// IsBefore проверяет, что время строго раньше другого
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter проверяет, что время строго позже другого
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Переход через полночь не поддерживается - возвращается ошибка,
// так как временная ось сетки не пересекает границу суток.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	hour, minute, err := t.Clock()
	if err != nil {
		return "", err
	}

	total := hour*60 + minute + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes is out of day range", ErrInvalidTimeFormat, string(t), minutes)
	}

	return NewTimeStringFromClock(total/60, total%60), nil
}
