package domain

// Default configuration values
const (
	DefaultTimeIncrementMinutes = 60
	DefaultPageCapacity         = 7 // колонок на страницу на широком экране
	NarrowPageCapacity          = 3 // колонок на страницу на узком экране
)

// Business validation constants
const (
	MinTimeIncrementMinutes = 5
	MaxTimeIncrementMinutes = 240
	MaxEventNameLength      = 120
	MaxParticipantNameLen   = 60
	MaxEventDates           = 62 // два месяца дат достаточно для любого опроса
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)

// ParticipantColors фиксированная палитра цветов аватаров.
// Цвет выбирается детерминированно по позиции участника в событии.
var ParticipantColors = []string{
	"#f87171", // red
	"#fb923c", // orange
	"#facc15", // yellow
	"#4ade80", // green
	"#2dd4bf", // teal
	"#60a5fa", // blue
	"#a78bfa", // violet
	"#f472b6", // pink
}

// ColorForIndex возвращает цвет палитры для n-го участника события
func ColorForIndex(index int) string {
	if index < 0 {
		index = 0
	}
	return ParticipantColors[index%len(ParticipantColors)]
}
