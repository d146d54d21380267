// internal/system/flamethrower.go
package system

import (
	"hoshi-td/internal/component"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/types"
	"hoshi-td/pkg/geom"
)

// FlamethrowerSystem — непрерывный урон по площади. Башня
// доворачивается на ближайшего врага в пределах дальности конуса
// (для прицеливания угол не важен), после чего урон в секунду
// получает каждый враг одновременно внутри дистанции и угла.
type FlamethrowerSystem struct {
	entity.Base
	combat *Combat

	// Дробный урон за кадр копится до целых единиц по каждой цели.
	accum map[types.EntityID]float64
}

func NewFlamethrowerSystem(combat *Combat, priority int) *FlamethrowerSystem {
	return &FlamethrowerSystem{
		Base:   entity.NewBase("flamethrower", priority),
		combat: combat,
		accum:  make(map[types.EntityID]float64),
	}
}

func (s *FlamethrowerSystem) Required() component.Kind {
	return component.KindFlamethrower | component.KindTower | component.KindTransform
}

func (s *FlamethrowerSystem) Update(w *entity.World, dt float64) {
	enemies := w.EntitiesWith(component.KindEnemy | component.KindTransform)

	for _, id := range w.EntitiesWith(s.Required()) {
		cone := w.Flamethrowers[id]
		pos := w.Transforms[id]
		origin := geom.Vec2{X: pos.X, Y: pos.Y}

		// Прицеливание: ближайший враг в радиусе, угол не важен.
		aim := types.NoEntity
		aimDist := cone.ConeLength
		for _, eid := range enemies {
			epos := w.Transforms[eid]
			d := geom.Dist(origin, geom.Vec2{X: epos.X, Y: epos.Y})
			if d <= aimDist && (aim == types.NoEntity || d < aimDist) {
				aim = eid
				aimDist = d
			}
		}
		if aim != types.NoEntity {
			tpos := w.Transforms[aim]
			pos.Rotation = geom.Angle(origin, geom.Vec2{X: tpos.X, Y: tpos.Y})
		}

		// Урон всем в конусе. Граница включительно, разница углов
		// считается через нормализацию — стык -π/π безопасен.
		damage := cone.DamagePerSecond * dt
		attacking := false
		for _, eid := range enemies {
			epos := w.Transforms[eid]
			target := geom.Vec2{X: epos.X, Y: epos.Y}
			if geom.Dist(origin, target) > cone.ConeLength {
				continue
			}
			if geom.AngleDiff(pos.Rotation, geom.Angle(origin, target)) > cone.ConeAngle/2 {
				continue
			}
			attacking = true
			s.applyBurn(w, eid, damage)
		}
		cone.Attacking = attacking
	}

	// Остатки по исчезнувшим врагам не копим.
	for id := range s.accum {
		if _, ok := w.Enemies[id]; !ok {
			delete(s.accum, id)
		}
	}
}

// applyBurn копит дробный урон на враге и снимает его целыми
// единицами, чтобы непрерывный DPS не терялся на округлении.
func (s *FlamethrowerSystem) applyBurn(w *entity.World, id types.EntityID, damage float64) {
	acc := s.accum[id] + damage
	whole := int(acc)
	s.accum[id] = acc - float64(whole)
	if whole > 0 {
		if killed := s.combat.ApplyDamage(w, id, whole); killed {
			delete(s.accum, id)
		}
	}
}
