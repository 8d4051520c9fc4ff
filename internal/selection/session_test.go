package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// manualScheduler позволяет тестам самим решать, сработал таймер дебаунса или нет
type manualScheduler struct {
	pending   []func()
	cancelled int
}

func (m *manualScheduler) Schedule(_ time.Duration, fn func()) CancelFunc {
	idx := len(m.pending)
	m.pending = append(m.pending, fn)
	return func() bool {
		if m.pending[idx] != nil {
			m.pending[idx] = nil
			m.cancelled++
			return true
		}
		return false
	}
}

// fire срабатывает последний взведенный таймер, если он не отменен
func (m *manualScheduler) fire() {
	if len(m.pending) == 0 {
		return
	}
	fn := m.pending[len(m.pending)-1]
	if fn != nil {
		m.pending[len(m.pending)-1] = nil
		fn()
	}
}

func slot(day string, hour int) types.SlotID {
	id, err := types.NewSlotIDFromClock(day, hour, 0)
	if err != nil {
		panic(err)
	}
	return id
}

func newTestSession(committed []types.SlotID, editable bool) (*Session, *manualScheduler, *[][]types.SlotID) {
	timers := &manualScheduler{}
	commits := &[][]types.SlotID{}
	s := NewSession(committed, editable, timers, func(ids []types.SlotID) {
		*commits = append(*commits, ids)
	})
	return s, timers, commits
}

func TestSession_ClickTogglesSlot(t *testing.T) {
	s, _, commits := newTestSession(nil, true)
	target := slot("mon", 9)

	// отпускание до срабатывания дебаунса - это клик
	s.PointerDown(target)
	s.PointerUp()

	require.Len(t, *commits, 1)
	assert.Equal(t, []types.SlotID{target}, (*commits)[0])

	// повторный клик снимает выбор
	s.PointerDown(target)
	s.PointerUp()

	require.Len(t, *commits, 2)
	assert.Empty(t, (*commits)[1])
}

func TestSession_DragUnionsSlots(t *testing.T) {
	s, timers, commits := newTestSession(nil, true)

	s.PointerDown(slot("mon", 9))
	timers.fire() // дебаунс истек - жест становится перетаскиванием
	s.PointerEnter(slot("mon", 10))
	s.PointerEnter(slot("mon", 11))
	s.PointerUp()

	require.Len(t, *commits, 1)
	assert.Equal(t, []types.SlotID{
		slot("mon", 9),
		slot("mon", 10),
		slot("mon", 11),
	}, (*commits)[0])
}

func TestSession_DragAccumulatesMonotonically(t *testing.T) {
	s, timers, _ := newTestSession(nil, true)

	s.PointerDown(slot("mon", 9))
	timers.fire()
	s.PointerEnter(slot("mon", 10))
	// возврат в уже пройденную ячейку ничего не убирает
	s.PointerEnter(slot("mon", 9))

	snap := s.Snapshot()
	assert.True(t, snap.IsDragging)
	assert.Len(t, snap.TempSelected, 2)

	s.PointerUp()
	assert.Len(t, s.Committed(), 2)
}

func TestSession_DeselectDrag(t *testing.T) {
	committed := []types.SlotID{slot("mon", 9), slot("mon", 10), slot("mon", 11)}
	s, timers, commits := newTestSession(committed, true)

	// жест начался на выбранном слоте - режим deselect
	s.PointerDown(slot("mon", 9))
	timers.fire()
	s.PointerEnter(slot("mon", 10))
	s.PointerUp()

	require.Len(t, *commits, 1)
	assert.Equal(t, []types.SlotID{slot("mon", 11)}, (*commits)[0])
}

func TestSession_ZeroLengthDragActsAsClick(t *testing.T) {
	// дебаунс истек, но указатель не двигался: фиксируется только стартовый слот
	s, timers, commits := newTestSession(nil, true)

	s.PointerDown(slot("tue", 14))
	timers.fire()
	s.PointerUp()

	require.Len(t, *commits, 1)
	assert.Equal(t, []types.SlotID{slot("tue", 14)}, (*commits)[0])
}

func TestSession_PointerUpWithoutGesture(t *testing.T) {
	s, _, commits := newTestSession(nil, true)

	// отпускание без жеста - no-op
	s.PointerUp()
	assert.Empty(t, *commits)
}

func TestSession_NotEditable(t *testing.T) {
	s, timers, commits := newTestSession(nil, false)

	s.PointerDown(slot("mon", 9))
	timers.fire()
	s.PointerEnter(slot("mon", 10))
	s.PointerUp()

	assert.Empty(t, *commits)
	assert.Empty(t, s.Committed())
	assert.Empty(t, timers.pending)
}

func TestSession_PointerEnterWhilePending(t *testing.T) {
	// до срабатывания дебаунса вход в соседние ячейки игнорируется
	s, _, _ := newTestSession(nil, true)

	s.PointerDown(slot("mon", 9))
	s.PointerEnter(slot("mon", 10))

	snap := s.Snapshot()
	assert.True(t, snap.IsPendingClick)
	assert.Len(t, snap.TempSelected, 1)
}

func TestSession_StaleTimerIgnored(t *testing.T) {
	s, timers, commits := newTestSession(nil, true)

	s.PointerDown(slot("mon", 9))
	s.PointerUp() // клик, жест завершен

	// таймер первого жеста уже отменен PointerUp; даже если бы он сработал,
	// смена поколения не дала бы ему повлиять на следующий жест
	timers.fire()

	snap := s.Snapshot()
	assert.False(t, snap.IsDragging)
	require.Len(t, *commits, 1)
}

func TestSession_CloseCancelsTimer(t *testing.T) {
	s, timers, _ := newTestSession(nil, true)

	s.PointerDown(slot("mon", 9))
	s.Close()
	timers.fire()

	snap := s.Snapshot()
	assert.False(t, snap.IsDragging)
	assert.False(t, snap.IsPendingClick)
	assert.Empty(t, snap.TempSelected)
	assert.GreaterOrEqual(t, timers.cancelled, 1)
}

func TestSession_SortedCommit(t *testing.T) {
	s, timers, commits := newTestSession(nil, true)

	s.PointerDown(slot("fri", 9))
	timers.fire()
	s.PointerEnter(slot("sun", 9))
	s.PointerEnter(slot("mon", 9))
	s.PointerUp()

	require.Len(t, *commits, 1)
	assert.Equal(t, []types.SlotID{
		slot("sun", 9),
		slot("mon", 9),
		slot("fri", 9),
	}, (*commits)[0])
}
