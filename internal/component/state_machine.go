// internal/component/state_machine.go
package component

// Machine — минимальный интерфейс машины состояний, который нужен
// системам: fsm.Machine[T] реализует его для любого контекста.
type Machine interface {
	Update(dt float64)
	Set(name string) bool
	CurrentName() string
}

// StateMachine хранит машину состояний сущности
// (статусы врага, жизненный цикл спавнера).
type StateMachine struct {
	Machine Machine
}
