// internal/system/helpers_test.go
package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hoshi-td/internal/component"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/event"
	"hoshi-td/internal/types"
)

// eventRecorder копит события по типам для проверок.
type eventRecorder struct {
	events []event.Event
}

func (r *eventRecorder) OnEvent(e event.Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) ofType(t event.EventType) []event.Event {
	var out []event.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func recordAll(d *event.Dispatcher, types ...event.EventType) *eventRecorder {
	r := &eventRecorder{}
	for _, t := range types {
		d.Subscribe(t, r)
	}
	return r
}

// spawnEnemyAt создаёт врага с машиной статусов в точке (x, y).
func spawnEnemyAt(w *entity.World, events *event.Dispatcher, x, y float64, health int) types.EntityID {
	e := w.CreateEntity("enemy")
	w.Transforms[e.ID] = &component.Transform{X: x, Y: y, Scale: 1}
	w.Enemies[e.ID] = &component.Enemy{
		Health:    health,
		MaxHealth: health,
		Speed:     60,
		Damage:    1,
		Reward:    10,
	}
	w.Renderables[e.ID] = &component.Renderable{Visible: true, ShowHealthBar: true, HealthFrac: 1}
	ctx := &EnemyContext{World: w, ID: e.ID, Events: events}
	w.StateMachines[e.ID] = &component.StateMachine{Machine: NewEnemyMachine(ctx, nil)}
	return e.ID
}

// placeTowerAt создаёт минимальную башню в точке (x, y).
func placeTowerAt(w *entity.World, x, y float64, tower component.Tower) types.EntityID {
	e := w.CreateEntity("tower")
	w.Transforms[e.ID] = &component.Transform{X: x, Y: y, Scale: 1}
	if tower.TargetID == 0 {
		tower.TargetID = types.NoEntity
	}
	w.Towers[e.ID] = &tower
	return e.ID
}

// enemyMachine достаёт машину врага; отсутствие — ошибка теста,
// а не повод для паники на nil.
func enemyMachine(t *testing.T, w *entity.World, id types.EntityID) component.Machine {
	t.Helper()
	sm, ok := w.StateMachines[id]
	require.True(t, ok, "state machine missing for entity %d", id)
	require.NotNil(t, sm.Machine)
	return sm.Machine
}
