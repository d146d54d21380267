// internal/system/combat.go
package system

import (
	"hoshi-td/internal/component"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/event"
	"hoshi-td/internal/types"
)

// Combat наносит урон врагам и ведёт их машину статусов.
// Не система, а общий помощник, который разделяют снаряды,
// огнемёт и всё остальное, что умеет бить.
type Combat struct {
	events *event.Dispatcher
}

func NewCombat(events *event.Dispatcher) *Combat {
	return &Combat{events: events}
}

// ApplyDamage наносит урон сущности. Возвращает true, если цель
// погибла от этого удара: её машина статусов переводится в dead,
// иначе — в damaged.
func (c *Combat) ApplyDamage(w *entity.World, id types.EntityID, damage int) (killed bool) {
	enemy, ok := w.Enemies[id]
	if !ok {
		return false
	}
	e := w.GetEntity(id)
	if e == nil || !e.Active || enemy.Health <= 0 {
		return false
	}

	enemy.Health -= damage
	if enemy.Health < 0 {
		enemy.Health = 0
	}

	if r, ok := w.Renderables[id]; ok && enemy.MaxHealth > 0 {
		r.HealthFrac = float32(enemy.Health) / float32(enemy.MaxHealth)
	}

	sm, hasSM := w.StateMachines[id]
	if enemy.Health == 0 {
		if hasSM && sm.Machine != nil {
			sm.Machine.Set(StateDead)
		} else {
			// Враг без машины статусов: убираем напрямую.
			w.RemoveEntity(id)
			c.events.Dispatch(event.Event{
				Type: event.EnemyDestroyed,
				Data: event.KillPayload{ID: id, Reward: enemy.Reward},
			})
		}
		return true
	}

	if hasSM && sm.Machine != nil {
		sm.Machine.Set(StateDamaged)
	}
	return false
}

// ApplySlow вешает на цель эффект замедления и переводит её статус
// в slowed. Повторное замедление обновляет таймер и фактор.
func (c *Combat) ApplySlow(w *entity.World, id types.EntityID, factor, duration float64) {
	if _, ok := w.Enemies[id]; !ok {
		return
	}
	w.SlowEffects[id] = &component.SlowEffect{Timer: duration, SlowFactor: factor}
	if sm, ok := w.StateMachines[id]; ok && sm.Machine != nil {
		sm.Machine.Set(StateSlowed)
	}
}

// ApplyStun оглушает цель на duration секунд.
func (c *Combat) ApplyStun(w *entity.World, id types.EntityID, duration float64) {
	if _, ok := w.Enemies[id]; !ok {
		return
	}
	w.StunEffects[id] = &component.StunEffect{Timer: duration}
	if sm, ok := w.StateMachines[id]; ok && sm.Machine != nil {
		sm.Machine.Set(StateStunned)
	}
}
