// internal/system/projectile.go
package system

import (
	"math"

	"hoshi-td/internal/component"
	"hoshi-td/internal/config"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/types"
	"hoshi-td/pkg/geom"
)

// ProjectileSystem управляет движением снарядов и нанесением урона.
// Цепная молния: потеряв или поразив цель, снаряд перенаправляется
// на ближайшего ещё не поражённого врага в радиусе цепи, пока не
// исчерпает лимит прыжков. Одну и ту же цель цепь не бьёт дважды.
type ProjectileSystem struct {
	entity.Base
	combat *Combat
}

func NewProjectileSystem(combat *Combat, priority int) *ProjectileSystem {
	return &ProjectileSystem{
		Base:   entity.NewBase("projectile", priority),
		combat: combat,
	}
}

func (s *ProjectileSystem) Required() component.Kind {
	return component.KindProjectile | component.KindTransform
}

func (s *ProjectileSystem) Update(w *entity.World, dt float64) {
	for _, id := range w.EntitiesWith(s.Required()) {
		proj := w.Projectiles[id]
		pos := w.Transforms[id]

		if proj.Pierce {
			s.updatePiercing(w, id, proj, pos, dt)
			continue
		}

		if !s.targetAlive(w, proj.TargetID) {
			// Цель пропала: цепной снаряд пробует перенаправиться,
			// обычный — умирает.
			if !s.rechain(w, proj, geom.Vec2{X: pos.X, Y: pos.Y}) {
				w.RemoveEntity(id)
			}
			continue
		}

		tpos := w.Transforms[proj.TargetID]
		target := geom.Vec2{X: tpos.X, Y: tpos.Y}
		current := geom.Vec2{X: pos.X, Y: pos.Y}
		dist := geom.Dist(current, target)

		if dist <= config.HitThreshold {
			s.hitTarget(w, id, proj, target)
			continue
		}

		// Большой шаг не перелетает цель, а прилипает к ней:
		// попадание засчитается в следующем тике.
		step := proj.Speed * dt
		if step >= dist {
			pos.X, pos.Y = target.X, target.Y
		} else {
			pos.X += (target.X - pos.X) / dist * step
			pos.Y += (target.Y - pos.Y) / dist * step
		}
	}
}

func (s *ProjectileSystem) targetAlive(w *entity.World, id types.EntityID) bool {
	e := w.GetEntity(id)
	if e == nil || !e.Active {
		return false
	}
	_, hasPos := w.Transforms[id]
	_, isEnemy := w.Enemies[id]
	return hasPos && isEnemy
}

// hitTarget наносит урон и решает судьбу снаряда: перенаправить
// цепь дальше или убрать.
func (s *ProjectileSystem) hitTarget(w *entity.World, id types.EntityID, proj *component.Projectile, at geom.Vec2) {
	killed := s.combat.ApplyDamage(w, proj.TargetID, proj.Damage)
	if proj.Chain != nil {
		proj.Chain.MarkHit(proj.TargetID)
	}
	if proj.SlowsTarget && !killed {
		s.combat.ApplySlow(w, proj.TargetID, proj.SlowFactor, proj.SlowDuration)
	}

	if s.rechain(w, proj, at) {
		// Попал, но цепь живёт: снаряд летит к следующей цели.
		return
	}
	w.RemoveEntity(id)
}

// rechain перенаправляет цепной снаряд на ближайшего непосещённого
// врага в радиусе цепи от точки from. Возвращает false, если цепи
// нет, лимит прыжков исчерпан или кандидатов не осталось.
func (s *ProjectileSystem) rechain(w *entity.World, proj *component.Projectile, from geom.Vec2) bool {
	chain := proj.Chain
	if chain == nil || chain.Count >= chain.Max {
		return false
	}

	best := types.NoEntity
	bestDist := math.MaxFloat64
	for _, eid := range w.EntitiesWith(component.KindEnemy | component.KindTransform) {
		if chain.WasHit(eid) {
			continue
		}
		epos := w.Transforms[eid]
		d := geom.Dist(from, geom.Vec2{X: epos.X, Y: epos.Y})
		if d <= chain.Range && d < bestDist {
			best = eid
			bestDist = d
		}
	}
	if best == types.NoEntity {
		return false
	}

	proj.TargetID = best
	chain.MarkHit(best)
	chain.Count++
	return true
}

// updatePiercing двигает сквозной снаряд по направлению, пробивая
// каждого врага на пути один раз, до исчерпания дальности.
func (s *ProjectileSystem) updatePiercing(w *entity.World, id types.EntityID, proj *component.Projectile, pos *component.Transform, dt float64) {
	step := proj.Speed * dt
	pos.X += math.Cos(proj.Direction) * step
	pos.Y += math.Sin(proj.Direction) * step
	proj.Traveled += step

	current := geom.Vec2{X: pos.X, Y: pos.Y}
	for _, eid := range w.EntitiesWith(component.KindEnemy | component.KindTransform) {
		if proj.WasPierced(eid) {
			continue
		}
		epos := w.Transforms[eid]
		if geom.Dist(current, geom.Vec2{X: epos.X, Y: epos.Y}) <= config.HitThreshold {
			proj.MarkPierced(eid)
			s.combat.ApplyDamage(w, eid, proj.Damage)
		}
	}

	if proj.Traveled >= proj.MaxDistance {
		w.RemoveEntity(id)
	}
}
