// internal/fsm/machine.go
package fsm

import "go.uber.org/zap"

// State — интерфейс для всех состояний. Параметризован контекстом
// исполнения: одна и та же машина обслуживает игровую сессию,
// статусы врага и жизненный цикл спавнера.
type State[T any] interface {
	Name() string
	Enter(ctx T, prev string)
	Update(ctx T, dt float64)
	Exit(ctx T, next string)
	// CanTransitionTo — охранник перехода: false запрещает уход
	// из текущего состояния в состояние next.
	CanTransitionTo(next string) bool
}

// BaseState — пустые реализации хуков для встраивания в состояния,
// которым нужна только часть интерфейса.
type BaseState[T any] struct{}

func (BaseState[T]) Enter(T, string)             {}
func (BaseState[T]) Update(T, float64)           {}
func (BaseState[T]) Exit(T, string)              {}
func (BaseState[T]) CanTransitionTo(string) bool { return true }

// Machine — машина состояний, привязанная к одному контексту.
// Инвариант: активно не более одного состояния.
type Machine[T any] struct {
	ctx     T
	states  map[string]State[T]
	current State[T]
	log     *zap.Logger
}

// New создаёт машину без начального состояния.
func New[T any](ctx T, log *zap.Logger) *Machine[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine[T]{
		ctx:    ctx,
		states: make(map[string]State[T]),
		log:    log,
	}
}

// Add регистрирует состояние по имени. Повторная регистрация того же
// имени молча затирает старое состояние (last-write-wins), но пишется
// в лог — обычно это ошибка сборки машины.
func (m *Machine[T]) Add(s State[T]) {
	if s == nil {
		return
	}
	if _, exists := m.states[s.Name()]; exists {
		m.log.Warn("fsm: duplicate state registration, overwriting",
			zap.String("state", s.Name()))
	}
	m.states[s.Name()] = s
}

// Set переводит машину в состояние name.
// Возвращает false без побочных эффектов, если состояние не
// зарегистрировано или охранник текущего состояния запрещает переход.
// Повторная установка текущего состояния — no-op, возвращает true:
// Enter/Exit не вызываются повторно.
func (m *Machine[T]) Set(name string) bool {
	next, ok := m.states[name]
	if !ok {
		m.log.Warn("fsm: set to unregistered state", zap.String("state", name))
		return false
	}
	if m.current != nil {
		if m.current.Name() == name {
			return true
		}
		if !m.current.CanTransitionTo(name) {
			return false
		}
	}

	prev := ""
	if m.current != nil {
		prev = m.current.Name()
		m.current.Exit(m.ctx, name)
	}
	m.current = next
	m.current.Enter(m.ctx, prev)
	return true
}

// Update передаёт тик активному состоянию; no-op, если его нет.
func (m *Machine[T]) Update(dt float64) {
	if m.current != nil {
		m.current.Update(m.ctx, dt)
	}
}

// Current возвращает активное состояние или nil.
func (m *Machine[T]) Current() State[T] {
	return m.current
}

// CurrentName возвращает имя активного состояния, "" если его нет.
func (m *Machine[T]) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}
