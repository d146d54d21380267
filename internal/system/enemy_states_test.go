// internal/system/enemy_states_test.go
package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoshi-td/internal/component"
	"hoshi-td/internal/event"
)

func TestEnemyStartsMoving(t *testing.T) {
	w, events := newCombatWorld(t)
	enemy := spawnEnemyAt(w, events, 0, 0, 50)
	w.Update(0)

	assert.Equal(t, StateMoving, enemyMachine(t, w, enemy).CurrentName())
}

func TestDamageFlashReturnsToMoving(t *testing.T) {
	w, events := newCombatWorld(t)
	enemy := spawnEnemyAt(w, events, 0, 0, 50)
	w.AddSystem(NewStateMachineSystem(10))
	w.Update(0)

	NewCombat(events).ApplyDamage(w, enemy, 10)
	assert.Equal(t, StateDamaged, enemyMachine(t, w, enemy).CurrentName())

	// Вспышка короткая: через 0.3 секунды враг снова в движении.
	w.Update(0.3)
	assert.Equal(t, StateMoving, enemyMachine(t, w, enemy).CurrentName())
}

func TestLethalDamageGoesToDeadAndStaysThere(t *testing.T) {
	w, events := newCombatWorld(t)
	rec := recordAll(events, event.EnemyDestroyed)
	enemy := spawnEnemyAt(w, events, 0, 0, 50)
	w.Update(0)

	killed := NewCombat(events).ApplyDamage(w, enemy, 60)
	require.True(t, killed)

	m := enemyMachine(t, w, enemy)
	assert.Equal(t, StateDead, m.CurrentName())
	require.Len(t, rec.ofType(event.EnemyDestroyed), 1)

	// dead терминально: обратно не выйти.
	assert.False(t, m.Set(StateMoving))
	assert.Equal(t, StateDead, m.CurrentName())
}

func TestDeadEnemyTakesNoFurtherDamage(t *testing.T) {
	w, events := newCombatWorld(t)
	rec := recordAll(events, event.EnemyDestroyed)
	enemy := spawnEnemyAt(w, events, 0, 0, 50)
	w.Update(0)

	combat := NewCombat(events)
	require.True(t, combat.ApplyDamage(w, enemy, 60))
	assert.False(t, combat.ApplyDamage(w, enemy, 60))
	assert.Len(t, rec.ofType(event.EnemyDestroyed), 1)
}

func TestSlowExpiresBackToMoving(t *testing.T) {
	w, events := newCombatWorld(t)
	enemy := spawnEnemyAt(w, events, 0, 0, 50)
	w.AddSystem(NewStatusEffectSystem(5))
	w.AddSystem(NewStateMachineSystem(10))
	w.Update(0)

	NewCombat(events).ApplySlow(w, enemy, 0.5, 0.5)
	assert.Equal(t, StateSlowed, enemyMachine(t, w, enemy).CurrentName())
	assert.Contains(t, w.SlowEffects, enemy)

	w.Update(0.3)
	assert.Equal(t, StateSlowed, enemyMachine(t, w, enemy).CurrentName())

	w.Update(0.3)
	assert.NotContains(t, w.SlowEffects, enemy)
	assert.Equal(t, StateMoving, enemyMachine(t, w, enemy).CurrentName())
}

func TestStunExpiresBackToMoving(t *testing.T) {
	w, events := newCombatWorld(t)
	enemy := spawnEnemyAt(w, events, 0, 0, 50)
	w.AddSystem(NewStatusEffectSystem(5))
	w.AddSystem(NewStateMachineSystem(10))
	w.Update(0)

	NewCombat(events).ApplyStun(w, enemy, 0.4)
	assert.Equal(t, StateStunned, enemyMachine(t, w, enemy).CurrentName())

	w.Update(0.5)
	assert.Equal(t, StateMoving, enemyMachine(t, w, enemy).CurrentName())
}

func TestHealthBarFractionTracksDamage(t *testing.T) {
	w, events := newCombatWorld(t)
	enemy := spawnEnemyAt(w, events, 0, 0, 100)
	w.Update(0)

	NewCombat(events).ApplyDamage(w, enemy, 25)
	assert.InDelta(t, 0.75, float64(w.Renderables[enemy].HealthFrac), 1e-6)
}

func TestEnemyWithoutMachineIsRemovedDirectly(t *testing.T) {
	w, events := newCombatWorld(t)
	rec := recordAll(events, event.EnemyDestroyed)
	e := w.CreateEntity("enemy")
	w.Transforms[e.ID] = &component.Transform{}
	w.Enemies[e.ID] = &component.Enemy{Health: 10, MaxHealth: 10, Reward: 7}
	w.Update(0)

	killed := NewCombat(events).ApplyDamage(w, e.ID, 10)
	require.True(t, killed)
	require.Len(t, rec.ofType(event.EnemyDestroyed), 1)
	assert.Equal(t, 7, rec.ofType(event.EnemyDestroyed)[0].Data.(event.KillPayload).Reward)
	assert.Empty(t, w.EntitiesWith(component.KindEnemy))
}
