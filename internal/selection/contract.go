package selection

import "time"

// CancelFunc отменяет запланированный таймер.
// Возвращает true, если таймер был отменен до срабатывания.
type CancelFunc func() bool

// TimerScheduler абстракция отложенного действия для дебаунса клик/перетаскивание.
// Позволяет подменять таймер в тестах (ручное срабатывание вместо реального времени).
type TimerScheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

// RealTimerScheduler планирует действия через time.AfterFunc
type RealTimerScheduler struct{}

// Schedule запускает fn через d и возвращает функцию отмены
func (RealTimerScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return t.Stop
}
