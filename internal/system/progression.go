// internal/system/progression.go
package system

import (
	"go.uber.org/zap"

	"hoshi-td/internal/component"
	"hoshi-td/internal/defs"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/event"
	"hoshi-td/internal/fsm"
	"hoshi-td/internal/types"
)

// WaveProgressionSystem ведёт сцену по табличной последовательности
// волн: на каждую волну настраивает именованные спавнеры, ждёт, пока
// все доспавнятся и враги закончатся, затем стартует следующую.
type WaveProgressionSystem struct {
	entity.Base
	deps     SpawnerDeps
	table    []defs.WaveDefinition
	sceneDef map[string]defs.SpawnerDef
	paths    map[string]types.EntityID

	spawners map[string]types.EntityID
	current  int // индекс волны в таблице; -1 до старта
	done     bool
}

// NewWaveProgressionSystem строит оркестратор для сцены. paths
// отображает имена маршрутов сцены в сущности Path.
func NewWaveProgressionSystem(deps SpawnerDeps, scene *defs.SceneDefinition, paths map[string]types.EntityID, priority int) *WaveProgressionSystem {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	byName := make(map[string]defs.SpawnerDef, len(scene.Spawners))
	for _, sd := range scene.Spawners {
		byName[sd.Name] = sd
	}
	return &WaveProgressionSystem{
		Base:     entity.NewBase("wave_progression", priority),
		deps:     deps,
		table:    scene.Progression,
		sceneDef: byName,
		paths:    paths,
		spawners: make(map[string]types.EntityID),
		current:  -1,
	}
}

func (s *WaveProgressionSystem) Required() component.Kind { return 0 }

func (s *WaveProgressionSystem) Update(w *entity.World, dt float64) {
	if s.done || len(s.table) == 0 {
		return
	}
	if s.current < 0 {
		s.startWave(w, 0)
		return
	}

	waiting, active := s.collectStates(w)

	// Волна закрыта, когда никто не спавнит и поле чисто.
	if active > 0 || EnemiesRemain(w) {
		return
	}
	if waiting > 0 {
		s.finishSpawners(w)
		return
	}

	next := s.current + 1
	if next >= len(s.table) {
		s.done = true
		s.deps.Events.Dispatch(event.Event{
			Type: event.AllWavesCompleted,
			Data: event.WavePayload{Wave: s.table[s.current].Number},
		})
		return
	}
	s.startWave(w, next)
}

// Done сообщает, исчерпана ли таблица волн.
func (s *WaveProgressionSystem) Done() bool { return s.done }

// CurrentWave возвращает номер текущей волны таблицы (0 до старта).
func (s *WaveProgressionSystem) CurrentWave() int {
	if s.current < 0 || s.current >= len(s.table) {
		return 0
	}
	return s.table[s.current].Number
}

// collectStates считает спавнеры в ожидании и ещё работающие
// (idle или spawning).
func (s *WaveProgressionSystem) collectStates(w *entity.World) (waiting, active int) {
	for _, id := range s.spawners {
		m := s.machineOf(w, id)
		if m == nil {
			continue
		}
		switch m.CurrentName() {
		case SpawnerWaiting:
			waiting++
		case SpawnerComplete:
		default:
			active++
		}
	}
	return waiting, active
}

// finishSpawners переводит отстрелявшиеся спавнеры в complete, чтобы
// волна считалась закрытой единообразно.
func (s *WaveProgressionSystem) finishSpawners(w *entity.World) {
	for _, id := range s.spawners {
		m := s.machineOf(w, id)
		if m != nil && m.CurrentName() == SpawnerWaiting {
			m.Set(SpawnerComplete)
		}
	}
}

func (s *WaveProgressionSystem) startWave(w *entity.World, idx int) {
	wave := s.table[idx]
	s.current = idx

	// Сначала глушим всех: волна активирует только перечисленных.
	for _, id := range s.spawners {
		if m := s.machineOf(w, id); m != nil && m.CurrentName() != SpawnerComplete {
			m.Set(SpawnerComplete)
		}
	}

	for _, entry := range wave.Spawners {
		base, ok := s.sceneDef[entry.Spawner]
		if !ok {
			s.deps.Log.Error("progression references unknown spawner",
				zap.String("spawner", entry.Spawner),
				zap.Int("wave", wave.Number))
			continue
		}
		id, exists := s.spawners[entry.Spawner]
		if !exists {
			id = CreateSpawner(w, s.deps, base, s.paths[base.Path], component.EnemyStats{})
			s.spawners[entry.Spawner] = id
		}
		sp := w.Spawners[id]
		if sp == nil {
			continue
		}
		s.configure(sp, base, entry, wave.Modifiers)
		if m := s.machineOf(w, id); m != nil {
			m.Set(SpawnerIdle)
		}
	}
	s.deps.Log.Info("progression wave started", zap.Int("wave", wave.Number))
}

// configure накладывает параметры записи волны и модификаторы на
// базовую конфигурацию спавнера.
func (s *WaveProgressionSystem) configure(sp *component.WaveSpawner, base defs.SpawnerDef, entry defs.WaveSpawnerEntry, mods *defs.WaveModifiers) {
	enemyID := entry.Enemy
	if enemyID == "" {
		enemyID = base.Enemy
	}
	interval := entry.SpawnInterval
	if interval <= 0 {
		interval = base.SpawnInterval
	}

	sp.Orchestrated = true
	sp.MaxWaves = 1
	sp.EnemiesPerWave = entry.Count
	sp.SpawnInterval = interval
	sp.WaveStartDelay = entry.StartDelay
	sp.IdleDuration = 0
	sp.EnemyDefID = enemyID
	sp.SpawnedThisWave = 0
	sp.SpawnTimer = 0
	sp.CompleteSignaled = false
	// Свежесозданный спавнер уже прошёл Enter(idle) с базовыми
	// значениями, поэтому таймеры выставляются и здесь.
	sp.DelayTimer = sp.WaveStartDelay
	sp.IdleTimer = sp.IdleDuration

	def, ok := s.deps.Lib.Enemies[enemyID]
	if !ok {
		s.deps.Log.Error("progression wave references unknown enemy", zap.String("enemy", enemyID))
		return
	}
	stats := component.EnemyStats{
		Health: def.Health,
		Speed:  def.Speed,
		Damage: def.Damage,
		Reward: def.Reward,
	}
	if mods != nil {
		if mods.HealthMult > 0 {
			stats.Health = int(float64(stats.Health) * mods.HealthMult)
		}
		if mods.SpeedMult > 0 {
			stats.Speed *= mods.SpeedMult
		}
		if mods.RewardMult > 0 {
			stats.Reward = int(float64(stats.Reward) * mods.RewardMult)
		}
	}
	sp.Stats = stats
}

func (s *WaveProgressionSystem) machineOf(w *entity.World, id types.EntityID) *fsm.Machine[*SpawnerContext] {
	sm, ok := w.StateMachines[id]
	if !ok || sm.Machine == nil {
		return nil
	}
	m, _ := sm.Machine.(*fsm.Machine[*SpawnerContext])
	return m
}
