// internal/system/tower.go
package system

import (
	"hoshi-td/internal/component"
	"hoshi-td/internal/config"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/types"
	"hoshi-td/pkg/geom"
)

// TowerSystem выбирает цели и стреляет. Каждый тик сначала копятся
// кулдауны всех башен, затем идёт выбор цели и стрельба: башня,
// ставшая готовой в этом кадре, стреляет в этом же кадре.
type TowerSystem struct {
	entity.Base
}

func NewTowerSystem(priority int) *TowerSystem {
	return &TowerSystem{Base: entity.NewBase("tower", priority)}
}

func (s *TowerSystem) Required() component.Kind {
	return component.KindTower | component.KindTransform
}

func (s *TowerSystem) Update(w *entity.World, dt float64) {
	ids := w.EntitiesWith(s.Required())

	// Кулдаун растёт всегда, независимо от наличия цели.
	for _, id := range ids {
		w.Towers[id].Cooldown += dt
	}

	enemies := w.EntitiesWith(component.KindEnemy | component.KindTransform)

	for _, id := range ids {
		tower := w.Towers[id]
		if tower.Class == component.TowerFlamethrower {
			// Конусом занимается FlamethrowerSystem.
			continue
		}
		pos := w.Transforms[id]

		tower.TargetID = s.findTarget(w, pos, tower.Range, enemies)
		if tower.TargetID == types.NoEntity {
			continue
		}

		if tower.FireRate <= 0 || tower.Cooldown < 1.0/tower.FireRate {
			continue
		}
		s.fire(w, id, tower, pos)
		tower.Cooldown = 0
	}
}

// findTarget возвращает ближайшего врага в радиусе или NoEntity.
// При равных дистанциях побеждает первый встреченный.
func (s *TowerSystem) findTarget(w *entity.World, pos *component.Transform, rng float64, enemies []types.EntityID) types.EntityID {
	best := types.NoEntity
	bestDist := rng
	origin := geom.Vec2{X: pos.X, Y: pos.Y}
	for _, eid := range enemies {
		epos := w.Transforms[eid]
		d := geom.Dist(origin, geom.Vec2{X: epos.X, Y: epos.Y})
		if d <= bestDist && (best == types.NoEntity || d < bestDist) {
			best = eid
			bestDist = d
		}
	}
	return best
}

// fire создаёт снаряд в центре башни с её параметрами.
func (s *TowerSystem) fire(w *entity.World, towerID types.EntityID, tower *component.Tower, pos *component.Transform) {
	e := w.CreateEntity("projectile")
	w.Transforms[e.ID] = &component.Transform{X: pos.X, Y: pos.Y, Scale: 1}
	proj := &component.Projectile{
		TargetID:     tower.TargetID,
		Speed:        tower.ProjectileSpeed,
		Damage:       tower.Damage,
		Color:        tower.Color,
		SlowsTarget:  tower.SlowFactor > 0,
		SlowDuration: tower.SlowDuration,
		SlowFactor:   tower.SlowFactor,
	}
	if tower.Class == component.TowerPiercing && tower.PierceDistance > 0 {
		proj.Pierce = true
		proj.MaxDistance = tower.PierceDistance
		if tpos, ok := w.Transforms[tower.TargetID]; ok {
			proj.Direction = geom.Angle(geom.Vec2{X: pos.X, Y: pos.Y}, geom.Vec2{X: tpos.X, Y: tpos.Y})
		}
	}
	if chain, ok := w.ChainLightnings[towerID]; ok {
		proj.Chain = component.NewChainState(chain.MaxChains, chain.ChainRange)
	}
	w.Projectiles[e.ID] = proj
	w.Renderables[e.ID] = &component.Renderable{
		Color:   tower.Color,
		Radius:  config.ProjectileRadius,
		Visible: true,
	}
}
