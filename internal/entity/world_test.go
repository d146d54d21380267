// internal/entity/world_test.go
package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoshi-td/internal/component"
	"hoshi-td/internal/types"
)

type recordingSystem struct {
	Base
	updates int
	order   *[]string
	inited  bool
	killed  bool
}

func newRecordingSystem(name string, priority int, order *[]string) *recordingSystem {
	return &recordingSystem{Base: NewBase(name, priority), order: order}
}

func (s *recordingSystem) Required() component.Kind { return 0 }

func (s *recordingSystem) Init(*World) { s.inited = true }

func (s *recordingSystem) Update(w *World, dt float64) {
	s.updates++
	if s.order != nil {
		*s.order = append(*s.order, s.Name())
	}
}

func (s *recordingSystem) Destroy(*World) { s.killed = true }

func TestCreateEntityIsDeferred(t *testing.T) {
	w := NewWorld(nil)
	e := w.CreateEntity("enemy")
	w.Enemies[e.ID] = &component.Enemy{Health: 10}

	// До Update сущность запросам не видна.
	assert.Empty(t, w.EntitiesWith(component.KindEnemy))
	assert.Equal(t, 1, w.PendingAdds())

	w.Update(0.016)
	assert.Equal(t, []types.EntityID{e.ID}, w.EntitiesWith(component.KindEnemy))
	assert.Equal(t, 0, w.PendingAdds())
}

func TestPendingWithFiltersByComponents(t *testing.T) {
	w := NewWorld(nil)
	e := w.CreateEntity("enemy")
	w.Enemies[e.ID] = &component.Enemy{Health: 10}
	p := w.CreateEntity("projectile")
	w.Projectiles[p.ID] = &component.Projectile{Damage: 5}

	assert.Equal(t, 2, w.PendingAdds())
	assert.Equal(t, 1, w.PendingWith(component.KindEnemy))
	assert.Equal(t, 1, w.PendingWith(component.KindProjectile))

	// Снятая до применения сущность из подсчёта выпадает.
	w.RemoveEntity(e.ID)
	assert.Equal(t, 0, w.PendingWith(component.KindEnemy))

	w.Update(0.016)
	assert.Equal(t, 0, w.PendingWith(component.KindProjectile))
}

func TestRemoveEntityHidesImmediately(t *testing.T) {
	w := NewWorld(nil)
	e := w.CreateEntity("enemy")
	w.Enemies[e.ID] = &component.Enemy{Health: 10}
	w.Update(0.016)
	require.Len(t, w.EntitiesWith(component.KindEnemy), 1)

	w.RemoveEntity(e.ID)

	// Ещё до финализации сущность исчезает из запросов,
	// но компоненты пока на месте.
	assert.Empty(t, w.EntitiesWith(component.KindEnemy))
	assert.Contains(t, w.Enemies, e.ID)

	w.Update(0.016)
	assert.NotContains(t, w.Enemies, e.ID)
	assert.Nil(t, w.GetEntity(e.ID))
}

func TestRemoveBeforeFirstApply(t *testing.T) {
	w := NewWorld(nil)
	e := w.CreateEntity("enemy")
	w.Enemies[e.ID] = &component.Enemy{}

	w.RemoveEntity(e.ID)
	w.Update(0.016)

	assert.Empty(t, w.EntitiesWith(component.KindEnemy))
	assert.NotContains(t, w.Enemies, e.ID)
}

func TestRemovalHooksRunOnFinalize(t *testing.T) {
	w := NewWorld(nil)
	var removed []types.EntityID
	w.OnRemoval(func(id types.EntityID) { removed = append(removed, id) })

	e := w.CreateEntity("enemy")
	w.Enemies[e.ID] = &component.Enemy{}
	w.Update(0.016)

	w.RemoveEntity(e.ID)
	assert.Empty(t, removed)

	w.Update(0.016)
	assert.Equal(t, []types.EntityID{e.ID}, removed)
}

func TestEntitiesWithMatchesFullMask(t *testing.T) {
	w := NewWorld(nil)
	both := w.CreateEntity("both")
	w.Enemies[both.ID] = &component.Enemy{}
	w.Transforms[both.ID] = &component.Transform{}

	enemyOnly := w.CreateEntity("enemy-only")
	w.Enemies[enemyOnly.ID] = &component.Enemy{}
	w.Update(0.016)

	ids := w.EntitiesWith(component.KindEnemy | component.KindTransform)
	assert.Equal(t, []types.EntityID{both.ID}, ids)
}

func TestSystemsRunInPriorityOrder(t *testing.T) {
	w := NewWorld(nil)
	var order []string
	late := newRecordingSystem("late", 50, &order)
	early := newRecordingSystem("early", 10, &order)
	w.AddSystem(late)
	w.AddSystem(early)

	assert.True(t, late.inited)
	assert.True(t, early.inited)

	w.Update(0.016)
	assert.Equal(t, []string{"early", "late"}, order)
}

func TestEqualPrioritiesKeepRegistrationOrder(t *testing.T) {
	w := NewWorld(nil)
	var order []string
	w.AddSystem(newRecordingSystem("first", 10, &order))
	w.AddSystem(newRecordingSystem("second", 10, &order))

	w.Update(0.016)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDisabledSystemIsSkipped(t *testing.T) {
	w := NewWorld(nil)
	s := newRecordingSystem("combat", 10, nil)
	w.AddSystem(s)

	w.Update(0.016)
	s.SetEnabled(false)
	w.Update(0.016)
	s.SetEnabled(true)
	w.Update(0.016)

	assert.Equal(t, 2, s.updates)
}

func TestAddSystemReplacesSameName(t *testing.T) {
	w := NewWorld(nil)
	old := newRecordingSystem("movement", 10, nil)
	w.AddSystem(old)

	replacement := newRecordingSystem("movement", 20, nil)
	w.AddSystem(replacement)

	assert.True(t, old.killed)
	assert.Same(t, System(replacement), w.System("movement"))

	w.Update(0.016)
	assert.Zero(t, old.updates)
	assert.Equal(t, 1, replacement.updates)
}

func TestRemoveSystemCallsDestroy(t *testing.T) {
	w := NewWorld(nil)
	s := newRecordingSystem("movement", 10, nil)
	w.AddSystem(s)

	w.RemoveSystem("movement")
	assert.True(t, s.killed)
	assert.Nil(t, w.System("movement"))
}
