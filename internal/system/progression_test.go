// internal/system/progression_test.go
package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoshi-td/internal/component"
	"hoshi-td/internal/defs"
	"hoshi-td/internal/entity"
	"hoshi-td/internal/event"
	"hoshi-td/internal/types"
)

func progressionScene() *defs.SceneDefinition {
	return &defs.SceneDefinition{
		ID: "test",
		Spawners: []defs.SpawnerDef{
			{Name: "west", Enemy: "ENEMY_NORMAL", SpawnInterval: 0.5},
			{Name: "east", Enemy: "ENEMY_NORMAL", SpawnInterval: 0.5},
		},
		Progression: []defs.WaveDefinition{
			{Number: 1, Spawners: []defs.WaveSpawnerEntry{
				{Spawner: "west", Count: 2},
			}},
			{Number: 2, Spawners: []defs.WaveSpawnerEntry{
				{Spawner: "west", Count: 1},
				{Spawner: "east", Count: 1},
			}, Modifiers: &defs.WaveModifiers{HealthMult: 2}},
		},
	}
}

func newProgressionWorld(t *testing.T) (*entity.World, *event.Dispatcher, *WaveProgressionSystem) {
	t.Helper()
	w, events := newCombatWorld(t)
	deps := testSpawnerDeps(events)
	sys := NewWaveProgressionSystem(deps, progressionScene(), map[string]types.EntityID{}, 60)
	w.AddSystem(NewStateMachineSystem(10))
	w.AddSystem(sys)
	return w, events, sys
}

func killAllEnemies(w *entity.World) {
	for _, id := range w.EntitiesWith(component.KindEnemy) {
		w.RemoveEntity(id)
	}
}

func TestProgressionRunsFirstWave(t *testing.T) {
	w, events, sys := newProgressionWorld(t)
	rec := recordAll(events, event.WaveStarted, event.EnemySpawned)

	w.Update(0) // стартует волну 1
	w.Update(0) // применяет созданный спавнер

	require.Equal(t, 1, sys.CurrentWave())

	// Оркестрованный спавнер: без задержек, два врага по 0.5с.
	w.Update(0.5)
	w.Update(0.5)
	w.Update(0)

	assert.Len(t, rec.ofType(event.EnemySpawned), 2)
	assert.Len(t, w.EntitiesWith(component.KindEnemy), 2)
	require.Len(t, rec.ofType(event.WaveStarted), 1)
}

func TestProgressionAdvancesWhenFieldClears(t *testing.T) {
	w, _, sys := newProgressionWorld(t)

	w.Update(0)
	w.Update(0)
	w.Update(0.5)
	w.Update(0.5)
	w.Update(0)
	require.Equal(t, 1, sys.CurrentWave())

	// Враги живы: волна не двигается.
	w.Update(0.5)
	require.Equal(t, 1, sys.CurrentWave())

	killAllEnemies(w)
	w.Update(0.1) // спавнеры переведены в complete
	w.Update(0.1) // старт волны 2

	assert.Equal(t, 2, sys.CurrentWave())
	assert.False(t, sys.Done())
}

func TestProgressionAppliesWaveModifiers(t *testing.T) {
	w, events, sys := newProgressionWorld(t)
	rec := recordAll(events, event.EnemySpawned)

	// Волна 1: два врага.
	w.Update(0)
	w.Update(0)
	w.Update(0.5)
	w.Update(0.5)
	w.Update(0)
	killAllEnemies(w)
	w.Update(0.1)
	w.Update(0.1)
	require.Equal(t, 2, sys.CurrentWave())

	// Волна 2: по одному врагу с запада и востока, здоровье x2.
	w.Update(0) // применяет спавнер east
	w.Update(0.5)
	w.Update(0.5)
	w.Update(0)

	spawned := rec.ofType(event.EnemySpawned)
	require.Len(t, spawned, 4)
	base := defs.DefaultLibrary().Enemies["ENEMY_NORMAL"].Health
	for _, e := range spawned[2:] {
		id := e.Data.(event.EntityPayload).ID
		require.Contains(t, w.Enemies, id)
		assert.Equal(t, base*2, w.Enemies[id].MaxHealth)
	}
}

func TestProgressionSignalsVictoryOnce(t *testing.T) {
	w, events, sys := newProgressionWorld(t)
	rec := recordAll(events, event.AllWavesCompleted)

	// Волна 1.
	w.Update(0)
	w.Update(0)
	w.Update(0.5)
	w.Update(0.5)
	w.Update(0)
	killAllEnemies(w)
	w.Update(0.1)
	w.Update(0.1)

	// Волна 2: оба спавнера должны доработать до конца.
	w.Update(0)
	w.Update(0.5)
	w.Update(0.5)
	w.Update(0)
	killAllEnemies(w)
	w.Update(0.1)
	w.Update(0.1)

	assert.True(t, sys.Done())
	require.Len(t, rec.ofType(event.AllWavesCompleted), 1)

	w.Update(1.0)
	assert.Len(t, rec.ofType(event.AllWavesCompleted), 1)
}
