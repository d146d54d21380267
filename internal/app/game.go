// internal/app/game.go
package app

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"hoshi-td/internal/component"
	"hoshi-td/internal/config"
	"hoshi-td/internal/defs"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/event"
	"hoshi-td/internal/fsm"
	"hoshi-td/internal/system"
	"hoshi-td/internal/types"
	"hoshi-td/internal/utils"
	"hoshi-td/pkg/geom"
)

// Приоритеты систем мира: меньше — раньше в кадре.
const (
	PriorityStatusEffect = 10
	PriorityStateMachine = 20
	PriorityMovement     = 30
	PriorityTower        = 40
	PriorityFlamethrower = 45
	PriorityProjectile   = 50
	PriorityProgression  = 60
)

// Game holds the session state: the live world, the loaded scene,
// the player's resources and the session state machine.
type Game struct {
	World  *entity.World
	Events *event.Dispatcher
	Lib    *defs.Library
	Rng    *utils.PRNGService
	Log    *zap.Logger

	Scene *defs.SceneDefinition
	Money int
	Lives int
	Score int

	// Session is the menu/playing/placement/pause/result machine.
	// Собирается пакетом state после создания Game.
	Session *fsm.Machine[*Game]

	SpeedIdx   int
	SelectedID types.EntityID
	Preview    *Preview

	combat        *system.Combat
	progression   *system.WaveProgressionSystem
	paths         map[string]types.EntityID
	wavesComplete bool
	gameTime      float64
}

// NewGame initializes a new game instance. Мир создаётся при
// загрузке сцены, до этого World == nil.
func NewGame(lib *defs.Library, seed int64, log *zap.Logger) *Game {
	g := &Game{
		Events: event.NewDispatcher(),
		Lib:    lib,
		Rng:    utils.NewPRNGService(seed),
		Log:    log,
	}
	listener := &sessionListener{game: g}
	g.Events.Subscribe(event.EnemyDestroyed, listener)
	g.Events.Subscribe(event.EnemyReachedEnd, listener)
	g.Events.Subscribe(event.AllWavesCompleted, listener)
	return g
}

// LoadScene строит свежий мир по описанию сцены: маршруты, спавнеры
// (автономные или под управлением таблицы волн) и игровые системы.
func (g *Game) LoadScene(sceneID string) error {
	scene, ok := g.Lib.Scenes[sceneID]
	if !ok {
		return fmt.Errorf("load scene %q: not found", sceneID)
	}

	g.Scene = &scene
	g.World = entity.NewWorld(g.Log)
	g.Money = scene.StartingMoney
	g.Lives = scene.StartingLives
	g.Score = 0
	g.SpeedIdx = 0
	g.SelectedID = types.NoEntity
	g.Preview = nil
	g.wavesComplete = false
	g.gameTime = 0
	g.progression = nil

	g.paths = make(map[string]types.EntityID, len(scene.Paths))
	for _, pd := range scene.Paths {
		pts := make([]geom.Vec2, len(pd.Waypoints))
		for i, wp := range pd.Waypoints {
			pts[i] = geom.Vec2{X: wp.X, Y: wp.Y}
		}
		e := g.World.CreateEntity("path:" + pd.Name)
		g.World.Paths[e.ID] = &component.Path{Waypoints: pts, Width: pd.Width}
		g.paths[pd.Name] = e.ID
	}

	g.World.OnRemoval(func(id types.EntityID) {
		if g.SelectedID == id {
			g.Deselect()
		}
	})

	g.combat = system.NewCombat(g.Events)
	g.World.AddSystem(system.NewStatusEffectSystem(PriorityStatusEffect))
	g.World.AddSystem(system.NewStateMachineSystem(PriorityStateMachine))
	g.World.AddSystem(system.NewMovementSystem(g.Events, PriorityMovement))
	g.World.AddSystem(system.NewTowerSystem(PriorityTower))
	g.World.AddSystem(system.NewFlamethrowerSystem(g.combat, PriorityFlamethrower))
	g.World.AddSystem(system.NewProjectileSystem(g.combat, PriorityProjectile))

	deps := system.SpawnerDeps{Events: g.Events, Lib: g.Lib, Rng: g.Rng, Log: g.Log}
	if len(scene.Progression) > 0 {
		g.progression = system.NewWaveProgressionSystem(deps, g.Scene, g.paths, PriorityProgression)
		g.World.AddSystem(g.progression)
	} else {
		for _, sd := range scene.Spawners {
			system.CreateSpawner(g.World, deps, sd, g.paths[sd.Path], g.enemyStats(sd.Enemy))
		}
	}

	g.Log.Info("scene loaded",
		zap.String("scene", scene.ID),
		zap.Int("money", g.Money),
		zap.Int("lives", g.Lives))
	return nil
}

func (g *Game) enemyStats(enemyID string) component.EnemyStats {
	def, ok := g.Lib.Enemies[enemyID]
	if !ok {
		g.Log.Error("spawner references unknown enemy", zap.String("enemy", enemyID))
		return component.EnemyStats{}
	}
	return component.EnemyStats{
		Health: def.Health,
		Speed:  def.Speed,
		Damage: def.Damage,
		Reward: def.Reward,
	}
}

// Update продвигает сессию на dt. Скорость симуляции применяет
// состояние playing, здесь dt — реальное время кадра.
func (g *Game) Update(dt float64) {
	if g.Session != nil {
		g.Session.Update(dt)
	}
}

// Step — один шаг симуляции мира с учётом множителя скорости.
// Вызывается состояниями сессии, которым нужен живой мир.
func (g *Game) Step(dt float64) {
	scaled := dt * g.SpeedMultiplier()
	g.gameTime += scaled
	g.World.Update(scaled)
}

// SpeedMultiplier возвращает текущий множитель скорости симуляции.
func (g *Game) SpeedMultiplier() float64 {
	return config.SpeedMultipliers[g.SpeedIdx]
}

// CycleSpeed переключает множитель скорости по кругу.
func (g *Game) CycleSpeed() {
	g.SpeedIdx = (g.SpeedIdx + 1) % len(config.SpeedMultipliers)
	g.Log.Debug("speed changed", zap.Float64("multiplier", g.SpeedMultiplier()))
}

// GameTime — накопленное время симуляции текущей сессии.
func (g *Game) GameTime() float64 { return g.gameTime }

// WavesComplete сообщает, исчерпан ли источник волн сцены.
func (g *Game) WavesComplete() bool { return g.wavesComplete }

// EnemiesRemain — остались ли в мире живые (или ещё не применённые) враги.
func (g *Game) EnemiesRemain() bool { return system.EnemiesRemain(g.World) }

// CurrentWave — номер текущей волны для HUD: табличной, если сценой
// управляет оркестратор, иначе максимум по автономным спавнерам.
func (g *Game) CurrentWave() int {
	if g.progression != nil {
		return g.progression.CurrentWave()
	}
	wave := 0
	for _, id := range g.World.EntitiesWith(component.KindWaveSpawner) {
		if sp := g.World.Spawners[id]; sp != nil && sp.CurrentWave > wave {
			wave = sp.CurrentWave
		}
	}
	return wave
}

// SelectAt выбирает сущность под курсором: приоритет у башен, затем
// враги. Пустой клик снимает выбор.
func (g *Game) SelectAt(x, y float64) {
	best := types.NoEntity
	bestDist := 0.0
	tower := false
	for _, id := range g.World.EntitiesWith(component.KindInteractable | component.KindTransform) {
		it := g.World.Interactables[id]
		t := g.World.Transforms[id]
		d := geom.Dist(geom.Vec2{X: x, Y: y}, geom.Vec2{X: t.X, Y: t.Y})
		if d > it.Radius {
			continue
		}
		_, isTower := g.World.Towers[id]
		switch {
		case best == types.NoEntity,
			isTower && !tower,
			isTower == tower && d < bestDist:
			best, bestDist, tower = id, d, isTower
		}
	}
	g.setSelection(best)
}

func (g *Game) setSelection(id types.EntityID) {
	if prev, ok := g.World.Selectables[g.SelectedID]; ok {
		prev.Selected = false
	}
	g.SelectedID = id
	if id == types.NoEntity {
		g.Events.Dispatch(event.Event{Type: event.Deselected})
		return
	}
	if sel, ok := g.World.Selectables[id]; ok {
		sel.Selected = true
	}
	if _, ok := g.World.Towers[id]; ok {
		g.Events.Dispatch(event.Event{Type: event.TowerSelected, Data: event.EntityPayload{ID: id}})
	} else {
		g.Events.Dispatch(event.Event{Type: event.EnemySelected, Data: event.EntityPayload{ID: id}})
	}
}

// Deselect снимает текущий выбор.
func (g *Game) Deselect() { g.setSelection(types.NoEntity) }

// SellTower продаёт башню за часть стоимости с учётом улучшений.
func (g *Game) SellTower(id types.EntityID) bool {
	tower, ok := g.World.Towers[id]
	if !ok {
		return false
	}
	invested := tower.Cost
	if up, ok := g.World.Upgrades[id]; ok {
		for _, uid := range up.Applied {
			if ud := g.findUpgrade(tower.DefID, uid); ud != nil {
				invested += ud.Cost
			}
		}
	}
	refund := int(float64(invested) * config.SellRefundFactor)
	g.Money += refund
	if g.SelectedID == id {
		g.Deselect()
	}
	g.World.RemoveEntity(id)
	g.Events.Dispatch(event.Event{Type: event.TowerSold, Data: event.PlacePayload{ID: id, Cost: refund}})
	g.Log.Info("tower sold", zap.Uint64("id", uint64(id)), zap.Int("refund", refund))
	return true
}

func (g *Game) findUpgrade(towerDefID, upgradeID string) *defs.UpgradeDefinition {
	for i := range g.Lib.Upgrades[towerDefID] {
		if g.Lib.Upgrades[towerDefID][i].ID == upgradeID {
			return &g.Lib.Upgrades[towerDefID][i]
		}
	}
	return nil
}

// SceneIDs возвращает отсортированные ID сцен библиотеки.
func (g *Game) SceneIDs() []string {
	ids := make([]string, 0, len(g.Lib.Scenes))
	for id := range g.Lib.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Result — финальный снимок сессии для событий GameOver / GameWin.
func (g *Game) Result() event.ResultPayload {
	return event.ResultPayload{Score: g.Score, Wave: g.CurrentWave(), Money: g.Money}
}

// sessionListener обновляет ресурсы сессии по событиям мира.
type sessionListener struct {
	game *Game
}

func (l *sessionListener) OnEvent(e event.Event) {
	g := l.game
	switch e.Type {
	case event.EnemyDestroyed:
		if p, ok := e.Data.(event.KillPayload); ok {
			g.Money += p.Reward
			g.Score += p.Reward
			if g.SelectedID == p.ID {
				g.Deselect()
			}
		}
	case event.EnemyReachedEnd:
		if p, ok := e.Data.(event.LeakPayload); ok {
			g.Lives -= p.Damage
			if g.Lives < 0 {
				g.Lives = 0
			}
			if g.SelectedID == p.ID {
				g.Deselect()
			}
			g.Log.Info("enemy leaked", zap.Uint64("id", uint64(p.ID)), zap.Int("lives", g.Lives))
		}
	case event.AllWavesCompleted:
		g.wavesComplete = true
	}
}
