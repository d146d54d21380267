// internal/system/movement.go
package system

import (
	"hoshi-td/internal/component"
	"hoshi-td/internal/config"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/event"
	"hoshi-td/pkg/geom"
)

// MovementSystem двигает сущности с PathFollower по маршруту.
// Порог достижения контрольной точки — config.HitThreshold; быстрый
// враг может проскочить точку за кадр, это принятое поведение.
type MovementSystem struct {
	entity.Base
	events *event.Dispatcher
}

func NewMovementSystem(events *event.Dispatcher, priority int) *MovementSystem {
	return &MovementSystem{
		Base:   entity.NewBase("movement", priority),
		events: events,
	}
}

func (s *MovementSystem) Required() component.Kind {
	return component.KindPathFollower | component.KindEnemy | component.KindTransform
}

func (s *MovementSystem) Update(w *entity.World, dt float64) {
	for _, id := range w.EntitiesWith(s.Required()) {
		follower := w.PathFollowers[id]
		enemy := w.Enemies[id]
		pos := w.Transforms[id]

		// Мёртвые и дошедшие до конца не двигаются; оглушение
		// останавливает на месте.
		if sm, ok := w.StateMachines[id]; ok && sm.Machine != nil {
			switch sm.Machine.CurrentName() {
			case StateDead, StateReachedEnd, StateStunned:
				continue
			}
		}

		path, ok := w.Paths[follower.PathID]
		if !ok {
			// Маршрут пропал — враг стоит, но не падает.
			continue
		}

		if follower.WaypointIndex >= len(path.Waypoints) {
			// Конец пути: собственная машина врага останавливает
			// движение, мы сообщаем урон базе.
			damage := enemy.Damage
			if sm, ok := w.StateMachines[id]; ok && sm.Machine != nil {
				sm.Machine.Set(StateReachedEnd)
			} else {
				enemy.ReachedEnd = true
				w.RemoveEntity(id)
			}
			s.events.Dispatch(event.Event{
				Type: event.EnemyReachedEnd,
				Data: event.LeakPayload{ID: id, Damage: damage},
			})
			continue
		}

		target := path.Waypoints[follower.WaypointIndex]
		current := geom.Vec2{X: pos.X, Y: pos.Y}
		dist := geom.Dist(current, target)

		speed := follower.Speed
		if slow, slowed := w.SlowEffects[id]; slowed {
			speed *= slow.SlowFactor
		}

		if dist <= config.HitThreshold {
			follower.WaypointIndex++
			continue
		}

		step := speed * dt
		pos.X += (target.X - pos.X) / dist * step
		pos.Y += (target.Y - pos.Y) / dist * step
		pos.Rotation = geom.Angle(current, target)
	}
}
