package selection

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-MeetupService/pkg/types"
)

// Mode режим перетаскивания
type Mode string

const (
	// ModeSelect перетаскивание добавляет слоты в выбор
	ModeSelect Mode = "select"

	// ModeDeselect перетаскивание убирает слоты из выбора
	ModeDeselect Mode = "deselect"
)

// DefaultDebounce окно дебаунса, отличающее клик от начала перетаскивания.
// Величина настраиваемая: достаточно короткая, чтобы не ощущаться задержкой ввода,
// и достаточно длинная, чтобы успеть отличить клик.
const DefaultDebounce = 30 * time.Millisecond

// Snapshot мгновенное состояние сессии для отрисовки сетки.
// Временные наборы живут только внутри активного перетаскивания и никогда не персистятся.
type Snapshot struct {
	IsDragging     bool
	IsPendingClick bool
	Mode           Mode
	Committed      map[types.SlotID]struct{}
	TempSelected   map[types.SlotID]struct{}
	TempDeselected map[types.SlotID]struct{}
}

// Session is the drag-selection state machine for one interactive grid instance:
// Idle -> PendingClick -> Dragging -> Idle. Pointer-down arms a cancellable
// debounce timer; pointer-up before it fires is a click (toggle), after - a drag
// commit. Temp sets accumulate monotonically during a drag: a cell re-entered
// mid-drag stays highlighted.
//
// Сессия владеет своим DragSelectionState единолично; зафиксированный выбор
// отдается наружу через onCommit отсортированным списком идентификаторов.
type Session struct {
	mu sync.Mutex

	editable bool
	debounce time.Duration
	timers   TimerScheduler
	onCommit func([]types.SlotID)

	committed map[types.SlotID]struct{}

	// transient drag state, reset on every commit
	isDragging     bool
	isPendingClick bool
	dragStartSlot  *types.SlotID
	mode           Mode
	tempSelected   map[types.SlotID]struct{}
	tempDeselected map[types.SlotID]struct{}
	cancelTimer    CancelFunc
	generation     uint64 // защита от срабатывания таймера устаревшего жеста
}

// NewSession создает сессию выбора поверх зафиксированного выбора участника.
// onCommit вызывается с новым полным выбором после каждого клика или перетаскивания.
func NewSession(committed []types.SlotID, editable bool, timers TimerScheduler, onCommit func([]types.SlotID)) *Session {
	s := &Session{
		editable:  editable,
		debounce:  DefaultDebounce,
		timers:    timers,
		onCommit:  onCommit,
		committed: make(map[types.SlotID]struct{}, len(committed)),
	}
	for _, id := range committed {
		s.committed[id] = struct{}{}
	}
	s.resetLocked()
	return s
}

// SetDebounce переопределяет окно дебаунса (используется в тестах)
func (s *Session) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = d
}

// PointerDown начало жеста над слотом: запоминает стартовый слот, выбирает режим
// по членству слота в зафиксированном выборе и взводит таймер дебаунса
func (s *Session) PointerDown(slot types.SlotID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editable {
		return
	}

	s.resetLocked()
	s.isPendingClick = true
	s.dragStartSlot = &slot

	if _, selected := s.committed[slot]; selected {
		s.mode = ModeDeselect
		s.tempDeselected[slot] = struct{}{}
	} else {
		s.mode = ModeSelect
		s.tempSelected[slot] = struct{}{}
	}

	gen := s.generation
	s.cancelTimer = s.timers.Schedule(s.debounce, func() {
		s.promoteToDrag(gen)
	})
}

// PointerEnter вход указателя в слот во время перетаскивания.
// Накопление монотонное: слоты только добавляются во временный набор режима.
func (s *Session) PointerEnter(slot types.SlotID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editable || !s.isDragging {
		return
	}

	if s.mode == ModeSelect {
		s.tempSelected[slot] = struct{}{}
	} else {
		s.tempDeselected[slot] = struct{}{}
	}
}

// PointerUp завершение жеста. Вызывается и глобальным обработчиком отпускания
// за пределами сетки - перетаскивание, закончившееся вне ее, не теряется.
// До срабатывания дебаунса это клик (переключение стартового слота),
// после - фиксация перетаскивания: объединение или вычитание временного набора.
func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editable {
		return
	}

	if s.cancelTimer != nil {
		s.cancelTimer()
		s.cancelTimer = nil
	}

	switch {
	case s.isPendingClick && s.dragStartSlot != nil:
		slot := *s.dragStartSlot
		if _, selected := s.committed[slot]; selected {
			delete(s.committed, slot)
		} else {
			s.committed[slot] = struct{}{}
		}
		s.emitLocked()

	case s.isDragging:
		if s.mode == ModeSelect {
			for slot := range s.tempSelected {
				s.committed[slot] = struct{}{}
			}
		} else {
			for slot := range s.tempDeselected {
				delete(s.committed, slot)
			}
		}
		s.emitLocked()
	}
	// жест без стартового слота - no-op

	s.resetLocked()
}

// Snapshot возвращает копию текущего состояния для отрисовки
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		IsDragging:     s.isDragging,
		IsPendingClick: s.isPendingClick,
		Mode:           s.mode,
		Committed:      copySet(s.committed),
		TempSelected:   copySet(s.tempSelected),
		TempDeselected: copySet(s.tempDeselected),
	}
}

// Committed возвращает зафиксированный выбор, отсортированный хронологически
func (s *Session) Committed() []types.SlotID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committedSortedLocked()
}

// Close отменяет взведенный таймер и сбрасывает транзиентное состояние.
// Вызывается при размонтировании сетки, чтобы отложенный переход не сработал
// после завершения взаимодействия.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// promoteToDrag переход PendingClick -> Dragging по срабатыванию дебаунса
func (s *Session) promoteToDrag(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Таймер принадлежит уже завершенному жесту
	if gen != s.generation || !s.isPendingClick {
		return
	}

	s.isPendingClick = false
	s.isDragging = true
}

func (s *Session) emitLocked() {
	if s.onCommit != nil {
		s.onCommit(s.committedSortedLocked())
	}
}

func (s *Session) committedSortedLocked() []types.SlotID {
	out := make([]types.SlotID, 0, len(s.committed))
	for slot := range s.committed {
		out = append(out, slot)
	}
	types.SortSlotIDs(out)
	return out
}

func (s *Session) resetLocked() {
	if s.cancelTimer != nil {
		s.cancelTimer()
		s.cancelTimer = nil
	}
	s.generation++
	s.isDragging = false
	s.isPendingClick = false
	s.dragStartSlot = nil
	s.mode = ModeSelect
	s.tempSelected = make(map[types.SlotID]struct{})
	s.tempDeselected = make(map[types.SlotID]struct{})
}

func copySet(src map[types.SlotID]struct{}) map[types.SlotID]struct{} {
	dst := make(map[types.SlotID]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}
