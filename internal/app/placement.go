// internal/app/placement.go
package app

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"hoshi-td/internal/component"
	"hoshi-td/internal/config"
	"hoshi-td/internal/defs"
	"hoshi-td/internal/event"
	"hoshi-td/internal/types"
	"hoshi-td/pkg/geom"
)

// Причины отказа в установке башни.
var (
	ErrUnknownTower      = errors.New("unknown tower definition")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBlockedByPath     = errors.New("position blocked by enemy path")
	ErrOverlapsTower     = errors.New("position overlaps another tower")
	ErrOutOfBounds       = errors.New("position outside the map")
)

// Preview — текущее превью установки башни.
type Preview struct {
	DefID string
	X, Y  float64
	Legal bool
}

// UpdatePreview пересчитывает превью установки под курсором.
func (g *Game) UpdatePreview(defID string, x, y float64) {
	legal := g.CanPlaceTower(defID, x, y) == nil
	g.Preview = &Preview{DefID: defID, X: x, Y: y, Legal: legal}
	g.Events.Dispatch(event.Event{
		Type: event.PlacementPreview,
		Data: event.PreviewPayload{X: x, Y: y, Legal: legal},
	})
}

// ClearPreview убирает превью при выходе из режима установки.
func (g *Game) ClearPreview() { g.Preview = nil }

// CanPlaceTower проверяет легальность установки: известная башня,
// деньги, граница карты, коридоры маршрутов и другие башни.
func (g *Game) CanPlaceTower(defID string, x, y float64) error {
	def, ok := g.Lib.Towers[defID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTower, defID)
	}
	if g.Money < def.Cost {
		return ErrInsufficientFunds
	}
	if g.Scene != nil && g.Scene.MapWidth > 0 {
		if x < 0 || y < 0 || x > g.Scene.MapWidth || y > g.Scene.MapHeight {
			return ErrOutOfBounds
		}
	}

	p := geom.Vec2{X: x, Y: y}
	for _, path := range g.World.Paths {
		limit := path.Width/2 + config.TowerRadius
		for i := 0; i+1 < len(path.Waypoints); i++ {
			if geom.SegmentDist(p, path.Waypoints[i], path.Waypoints[i+1]) < limit {
				return ErrBlockedByPath
			}
		}
	}

	for _, id := range g.World.EntitiesWith(component.KindTower | component.KindTransform) {
		t := g.World.Transforms[id]
		if geom.Dist(p, geom.Vec2{X: t.X, Y: t.Y}) < config.TowerRadius*2 {
			return ErrOverlapsTower
		}
	}
	return nil
}

// PlaceTower строит башню, списывает деньги и шлёт TowerPlaced.
func (g *Game) PlaceTower(defID string, x, y float64) (types.EntityID, error) {
	if err := g.CanPlaceTower(defID, x, y); err != nil {
		return types.NoEntity, err
	}
	def := g.Lib.Towers[defID]
	id := g.createTower(def, x, y)
	g.Money -= def.Cost
	g.Events.Dispatch(event.Event{Type: event.TowerPlaced, Data: event.PlacePayload{ID: id, Cost: def.Cost}})
	g.Log.Info("tower placed",
		zap.String("tower", defID),
		zap.Uint64("id", uint64(id)),
		zap.Int("money", g.Money))
	return id, nil
}

func (g *Game) createTower(def defs.TowerDefinition, x, y float64) types.EntityID {
	w := g.World
	e := w.CreateEntity("tower:" + def.ID)
	w.Transforms[e.ID] = &component.Transform{X: x, Y: y, Scale: 1}
	tower := &component.Tower{
		DefID:           def.ID,
		Class:           towerClass(def.Class),
		Level:           1,
		Damage:          def.Damage,
		Range:           def.Range,
		FireRate:        def.FireRate,
		ProjectileSpeed: def.ProjectileSpeed,
		Cost:            def.Cost,
		Color:           def.Color.RGBA(),
		TargetID:        types.NoEntity,
	}
	if def.Slow != nil {
		tower.SlowFactor = def.Slow.Factor
		tower.SlowDuration = def.Slow.Duration
	}
	if def.Pierce != nil {
		tower.PierceDistance = def.Pierce.MaxDistance
	}
	w.Towers[e.ID] = tower
	w.Renderables[e.ID] = &component.Renderable{
		Color:     def.Color.RGBA(),
		Radius:    config.TowerRadius,
		HasStroke: true,
		Visible:   true,
	}
	w.Interactables[e.ID] = &component.Interactable{Radius: config.TowerRadius}
	w.Selectables[e.ID] = &component.Selectable{}
	w.Upgrades[e.ID] = &component.Upgrades{}

	if def.Chain != nil {
		w.ChainLightnings[e.ID] = &component.ChainLightning{
			MaxChains:  def.Chain.MaxChains,
			ChainRange: def.Chain.ChainRange,
		}
	}
	if def.Cone != nil {
		w.Flamethrowers[e.ID] = &component.Flamethrower{
			ConeLength:      def.Cone.Length,
			ConeAngle:       def.Cone.AngleDeg * math.Pi / 180,
			DamagePerSecond: def.Cone.DamagePerSecond,
		}
	}
	return e.ID
}

func towerClass(c defs.TowerClass) component.TowerClass {
	switch c {
	case defs.ClassSniper:
		return component.TowerSniper
	case defs.ClassChainLightning:
		return component.TowerChainLightning
	case defs.ClassFlamethrower:
		return component.TowerFlamethrower
	case defs.ClassPiercing:
		return component.TowerPiercing
	default:
		return component.TowerBasic
	}
}
