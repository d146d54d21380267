// internal/system/spawner.go
package system

import (
	"go.uber.org/zap"

	"hoshi-td/internal/component"
	"hoshi-td/internal/config"
	"hoshi-td/internal/defs"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/event"
	"hoshi-td/internal/fsm"
	"hoshi-td/internal/types"
	"hoshi-td/internal/utils"
)

// Состояния жизненного цикла спавнера.
const (
	SpawnerIdle     = "idle"
	SpawnerSpawning = "spawning"
	SpawnerWaiting  = "waiting"
	SpawnerComplete = "complete"
)

// Разброс точки появления врагов вокруг спавнера.
const spawnJitter = 8.0

// SpawnerDeps — зависимости, общие для всех спавнеров сцены.
type SpawnerDeps struct {
	Events *event.Dispatcher
	Lib    *defs.Library
	Rng    *utils.PRNGService
	Log    *zap.Logger
}

// SpawnerContext — контекст машины состояний одного спавнера.
type SpawnerContext struct {
	World *entity.World
	ID    types.EntityID
	Deps  SpawnerDeps
}

func (c *SpawnerContext) spawner() *component.WaveSpawner {
	return c.World.Spawners[c.ID]
}

func (c *SpawnerContext) machine() *fsm.Machine[*SpawnerContext] {
	sm, ok := c.World.StateMachines[c.ID]
	if !ok || sm.Machine == nil {
		return nil
	}
	m, _ := sm.Machine.(*fsm.Machine[*SpawnerContext])
	return m
}

// NewSpawnerMachine собирает машину жизненного цикла спавнера:
// idle → spawning → waiting → (idle | complete).
func NewSpawnerMachine(ctx *SpawnerContext) *fsm.Machine[*SpawnerContext] {
	m := fsm.New(ctx, ctx.Deps.Log)
	m.Add(&spawnerIdleState{})
	m.Add(&spawnerSpawningState{})
	m.Add(&spawnerWaitingState{})
	m.Add(&spawnerCompleteState{})
	m.Set(SpawnerIdle)
	return m
}

// CreateSpawner создаёт сущность спавнера с машиной состояний.
// pathID == NoEntity допустим: враги появятся без маршрута.
func CreateSpawner(w *entity.World, deps SpawnerDeps, def defs.SpawnerDef, pathID types.EntityID, stats component.EnemyStats) types.EntityID {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	e := w.CreateEntity("spawner:" + def.Name)
	w.Transforms[e.ID] = &component.Transform{X: def.X, Y: def.Y, Scale: 1}
	w.Spawners[e.ID] = &component.WaveSpawner{
		SpawnerName:    def.Name,
		MaxWaves:       def.MaxWaves,
		EnemiesPerWave: def.EnemiesPerWave,
		SpawnInterval:  def.SpawnInterval,
		IdleDuration:   def.IdleDuration,
		WaveStartDelay: def.WaveStartDelay,
		EnemyDefID:     def.Enemy,
		Stats:          stats,
		PathID:         pathID,
	}
	ctx := &SpawnerContext{World: w, ID: e.ID, Deps: deps}
	w.StateMachines[e.ID] = &component.StateMachine{Machine: NewSpawnerMachine(ctx)}
	return e.ID
}

// idle: пережидает задержку старта и паузу между волнами.
type spawnerIdleState struct {
	fsm.BaseState[*SpawnerContext]
}

func (spawnerIdleState) Name() string { return SpawnerIdle }

func (spawnerIdleState) Enter(ctx *SpawnerContext, prev string) {
	sp := ctx.spawner()
	if sp == nil {
		return
	}
	sp.DelayTimer = sp.WaveStartDelay
	sp.IdleTimer = sp.IdleDuration
}

func (spawnerIdleState) Update(ctx *SpawnerContext, dt float64) {
	sp := ctx.spawner()
	if sp == nil {
		return
	}
	if sp.DelayTimer > 0 {
		sp.DelayTimer -= dt
		return
	}
	sp.IdleTimer -= dt
	if sp.IdleTimer <= 0 {
		if m := ctx.machine(); m != nil {
			m.Set(SpawnerSpawning)
		}
	}
}

// spawning: по таймеру выпускает врагов, пока не наберётся волна.
type spawnerSpawningState struct {
	fsm.BaseState[*SpawnerContext]
}

func (spawnerSpawningState) Name() string { return SpawnerSpawning }

func (spawnerSpawningState) Enter(ctx *SpawnerContext, prev string) {
	sp := ctx.spawner()
	if sp == nil {
		return
	}
	sp.CurrentWave++
	sp.SpawnedThisWave = 0
	sp.SpawnTimer = 0
	ctx.Deps.Events.Dispatch(event.Event{
		Type: event.WaveStarted,
		Data: event.WavePayload{Spawner: sp.SpawnerName, Wave: sp.CurrentWave},
	})
}

func (s spawnerSpawningState) Update(ctx *SpawnerContext, dt float64) {
	sp := ctx.spawner()
	if sp == nil {
		return
	}
	sp.SpawnTimer += dt
	if sp.SpawnTimer >= sp.SpawnInterval {
		s.spawnEnemy(ctx, sp)
		sp.SpawnTimer = 0
	}
	if sp.SpawnedThisWave >= sp.EnemiesPerWave {
		if m := ctx.machine(); m != nil {
			m.Set(SpawnerWaiting)
		}
	}
}

// spawnEnemy создаёт полную связку компонентов врага.
func (spawnerSpawningState) spawnEnemy(ctx *SpawnerContext, sp *component.WaveSpawner) {
	w := ctx.World
	deps := ctx.Deps

	def, ok := deps.Lib.Enemies[sp.EnemyDefID]
	if !ok {
		deps.Log.Error("enemy definition not found", zap.String("enemy", sp.EnemyDefID))
		return
	}

	pos := w.Transforms[ctx.ID]
	e := w.CreateEntity("enemy:" + def.ID)
	w.Transforms[e.ID] = &component.Transform{
		X:     pos.X + deps.Rng.Jitter(spawnJitter),
		Y:     pos.Y + deps.Rng.Jitter(spawnJitter),
		Scale: 1,
	}
	w.Enemies[e.ID] = &component.Enemy{
		DefID:     def.ID,
		Health:    sp.Stats.Health,
		MaxHealth: sp.Stats.Health,
		Speed:     sp.Stats.Speed,
		Damage:    sp.Stats.Damage,
		Reward:    sp.Stats.Reward,
	}
	w.Renderables[e.ID] = &component.Renderable{
		Color:         def.Color.RGBA(),
		Radius:        config.EnemyRadius,
		Visible:       true,
		ShowHealthBar: true,
		HealthFrac:    1,
	}
	w.Interactables[e.ID] = &component.Interactable{Radius: config.EnemyRadius}
	w.Selectables[e.ID] = &component.Selectable{}

	if sp.PathID != types.NoEntity {
		if _, ok := w.Paths[sp.PathID]; ok {
			w.PathFollowers[e.ID] = &component.PathFollower{
				PathID: sp.PathID,
				Speed:  sp.Stats.Speed,
			}
		} else {
			// Контракт мягкий: враг без маршрута, но жалуемся громко.
			deps.Log.Error("spawner path cannot be resolved, spawning without PathFollower",
				zap.String("spawner", sp.SpawnerName),
				zap.Uint64("path", uint64(sp.PathID)))
		}
	}

	enemyCtx := &EnemyContext{World: w, ID: e.ID, Events: deps.Events}
	w.StateMachines[e.ID] = &component.StateMachine{Machine: NewEnemyMachine(enemyCtx, deps.Log)}

	sp.SpawnedThisWave++
	deps.Events.Dispatch(event.Event{
		Type: event.EnemySpawned,
		Data: event.EntityPayload{ID: e.ID},
	})
}

// waiting: при внешнем оркестраторе — no-op, переходами управляет он.
// Иначе ждём нулевого количества врагов и либо идём на следующую
// волну, либо завершаемся.
type spawnerWaitingState struct {
	fsm.BaseState[*SpawnerContext]
}

func (spawnerWaitingState) Name() string { return SpawnerWaiting }

func (spawnerWaitingState) Enter(ctx *SpawnerContext, prev string) {
	sp := ctx.spawner()
	if sp == nil {
		return
	}
	ctx.Deps.Events.Dispatch(event.Event{
		Type: event.WaveCompleted,
		Data: event.WavePayload{Spawner: sp.SpawnerName, Wave: sp.CurrentWave},
	})
}

func (spawnerWaitingState) Update(ctx *SpawnerContext, dt float64) {
	sp := ctx.spawner()
	if sp == nil || sp.Orchestrated {
		return
	}
	if EnemiesRemain(ctx.World) {
		return
	}
	m := ctx.machine()
	if m == nil {
		return
	}
	if sp.CurrentWave < sp.MaxWaves {
		m.Set(SpawnerIdle)
	} else {
		m.Set(SpawnerComplete)
	}
}

// complete: терминальное (оркестратор может принудительно вернуть
// спавнер в idle на следующей волне таблицы).
type spawnerCompleteState struct {
	fsm.BaseState[*SpawnerContext]
}

func (spawnerCompleteState) Name() string { return SpawnerComplete }

func (spawnerCompleteState) Enter(ctx *SpawnerContext, prev string) {
	sp := ctx.spawner()
	if sp == nil || sp.CompleteSignaled {
		return
	}
	sp.CompleteSignaled = true
	if sp.Orchestrated {
		return
	}
	// Сцена исчерпана, только когда отстрелялись все спавнеры.
	for _, other := range ctx.World.Spawners {
		if !other.CompleteSignaled {
			return
		}
	}
	ctx.Deps.Events.Dispatch(event.Event{
		Type: event.AllWavesCompleted,
		Data: event.WavePayload{Spawner: sp.SpawnerName, Wave: sp.CurrentWave},
	})
}

func (spawnerCompleteState) CanTransitionTo(next string) bool {
	return next == SpawnerIdle
}

// EnemiesRemain учитывает и уже применённых врагов, и созданных
// в этом кадре, но ещё не видимых запросам. Ожидающие сущности без
// компонента врага (снаряды того же кадра) волну не держат.
func EnemiesRemain(w *entity.World) bool {
	return len(w.EntitiesWith(component.KindEnemy)) > 0 || w.PendingWith(component.KindEnemy) > 0
}
