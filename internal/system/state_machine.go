// internal/system/state_machine.go
package system

import (
	"hoshi-td/internal/component"
	"hoshi-td/internal/entity"
)

// StateMachineSystem раз в кадр тикает машину состояний каждой
// сущности — статусы врагов и жизненные циклы спавнеров.
type StateMachineSystem struct {
	entity.Base
}

func NewStateMachineSystem(priority int) *StateMachineSystem {
	return &StateMachineSystem{Base: entity.NewBase("state_machine", priority)}
}

func (s *StateMachineSystem) Required() component.Kind {
	return component.KindStateMachine
}

func (s *StateMachineSystem) Update(w *entity.World, dt float64) {
	for _, id := range w.EntitiesWith(s.Required()) {
		if sm, ok := w.StateMachines[id]; ok && sm.Machine != nil {
			sm.Machine.Update(dt)
		}
	}
}
