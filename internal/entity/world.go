// internal/entity/world.go
package entity

import (
	"sort"

	"go.uber.org/zap"

	"hoshi-td/internal/component"
	"hoshi-td/internal/types"
)

// World владеет жизненным циклом сущностей, покомпонентными картами
// и реестром систем. Данные компонентов лежат в открытых картах —
// системы читают и пишут их напрямую, как и в остальном коде.
//
// Добавление сущностей отложенное: созданная в середине кадра
// сущность видна запросам только со следующего World.Update.
// Удаление ставит Active=false сразу (запросы перестают её видеть
// в том же кадре) и физически вычищает карты при следующем apply.
type World struct {
	log *zap.Logger

	nextID        types.EntityID
	entities      map[types.EntityID]*Entity
	pendingAdd    []*Entity
	pendingRemove []types.EntityID
	removalHooks  []func(types.EntityID)

	systems []System

	Transforms      map[types.EntityID]*component.Transform
	Renderables     map[types.EntityID]*component.Renderable
	Towers          map[types.EntityID]*component.Tower
	Enemies         map[types.EntityID]*component.Enemy
	Projectiles     map[types.EntityID]*component.Projectile
	PathFollowers   map[types.EntityID]*component.PathFollower
	Paths           map[types.EntityID]*component.Path
	Spawners        map[types.EntityID]*component.WaveSpawner
	StateMachines   map[types.EntityID]*component.StateMachine
	Selectables     map[types.EntityID]*component.Selectable
	Interactables   map[types.EntityID]*component.Interactable
	Upgrades        map[types.EntityID]*component.Upgrades
	ChainLightnings map[types.EntityID]*component.ChainLightning
	Flamethrowers   map[types.EntityID]*component.Flamethrower
	SlowEffects     map[types.EntityID]*component.SlowEffect
	StunEffects     map[types.EntityID]*component.StunEffect
}

// NewWorld создаёт пустой мир.
func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		log:             log,
		nextID:          1,
		entities:        make(map[types.EntityID]*Entity),
		Transforms:      make(map[types.EntityID]*component.Transform),
		Renderables:     make(map[types.EntityID]*component.Renderable),
		Towers:          make(map[types.EntityID]*component.Tower),
		Enemies:         make(map[types.EntityID]*component.Enemy),
		Projectiles:     make(map[types.EntityID]*component.Projectile),
		PathFollowers:   make(map[types.EntityID]*component.PathFollower),
		Paths:           make(map[types.EntityID]*component.Path),
		Spawners:        make(map[types.EntityID]*component.WaveSpawner),
		StateMachines:   make(map[types.EntityID]*component.StateMachine),
		Selectables:     make(map[types.EntityID]*component.Selectable),
		Interactables:   make(map[types.EntityID]*component.Interactable),
		Upgrades:        make(map[types.EntityID]*component.Upgrades),
		ChainLightnings: make(map[types.EntityID]*component.ChainLightning),
		Flamethrowers:   make(map[types.EntityID]*component.Flamethrower),
		SlowEffects:     make(map[types.EntityID]*component.SlowEffect),
		StunEffects:     make(map[types.EntityID]*component.StunEffect),
	}
}

// CreateEntity выделяет свежий ID и ставит сущность в очередь на
// добавление. Хэндл рабочий сразу: компоненты можно вешать до того,
// как сущность станет видна запросам.
func (w *World) CreateEntity(name string) *Entity {
	e := &Entity{
		ID:     w.nextID,
		Name:   name,
		Active: true,
	}
	w.nextID++
	w.pendingAdd = append(w.pendingAdd, e)
	return e
}

// RemoveEntity гасит сущность немедленно и откладывает финализацию.
func (w *World) RemoveEntity(id types.EntityID) {
	e, ok := w.entities[id]
	if !ok {
		// Возможно, сущность ещё в очереди на добавление.
		for _, p := range w.pendingAdd {
			if p.ID == id {
				p.Active = false
				return
			}
		}
		return
	}
	if !e.Active {
		return
	}
	e.Active = false
	w.pendingRemove = append(w.pendingRemove, id)
}

// GetEntity возвращает уже применённую сущность или nil.
func (w *World) GetEntity(id types.EntityID) *Entity {
	return w.entities[id]
}

// hasKind сообщает, есть ли у сущности компонент данного вида.
func (w *World) hasKind(id types.EntityID, k component.Kind) bool {
	switch k {
	case component.KindTransform:
		_, ok := w.Transforms[id]
		return ok
	case component.KindRenderable:
		_, ok := w.Renderables[id]
		return ok
	case component.KindTower:
		_, ok := w.Towers[id]
		return ok
	case component.KindEnemy:
		_, ok := w.Enemies[id]
		return ok
	case component.KindProjectile:
		_, ok := w.Projectiles[id]
		return ok
	case component.KindPathFollower:
		_, ok := w.PathFollowers[id]
		return ok
	case component.KindPath:
		_, ok := w.Paths[id]
		return ok
	case component.KindWaveSpawner:
		_, ok := w.Spawners[id]
		return ok
	case component.KindStateMachine:
		_, ok := w.StateMachines[id]
		return ok
	case component.KindSelectable:
		_, ok := w.Selectables[id]
		return ok
	case component.KindInteractable:
		_, ok := w.Interactables[id]
		return ok
	case component.KindUpgrades:
		_, ok := w.Upgrades[id]
		return ok
	case component.KindChainLightning:
		_, ok := w.ChainLightnings[id]
		return ok
	case component.KindFlamethrower:
		_, ok := w.Flamethrowers[id]
		return ok
	case component.KindSlowEffect:
		_, ok := w.SlowEffects[id]
		return ok
	case component.KindStunEffect:
		_, ok := w.StunEffects[id]
		return ok
	}
	return false
}

// hasAll проверяет всю маску требуемых компонентов.
func (w *World) hasAll(id types.EntityID, mask component.Kind) bool {
	for bit := component.Kind(1); bit != 0 && bit <= mask; bit <<= 1 {
		if mask&bit != 0 && !w.hasKind(id, bit) {
			return false
		}
	}
	return true
}

// EntitiesWith возвращает ID всех активных применённых сущностей,
// имеющих каждый компонент маски. Чистое чтение без побочных
// эффектов; результат отсортирован по ID, чтобы порядок обхода
// был детерминированным.
func (w *World) EntitiesWith(mask component.Kind) []types.EntityID {
	var out []types.EntityID
	for id, e := range w.entities {
		if !e.Active {
			continue
		}
		if w.hasAll(id, mask) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PendingAdds возвращает число сущностей, созданных в текущем кадре
// и ещё не видимых запросам.
func (w *World) PendingAdds() int {
	return len(w.pendingAdd)
}

// PendingWith считает ожидающие сущности с полным набором компонентов
// mask. Компоненты кладутся в карты сразу при создании, так что
// фильтр работает и до применения.
func (w *World) PendingWith(mask component.Kind) int {
	n := 0
	for _, p := range w.pendingAdd {
		if p.Active && w.hasAll(p.ID, mask) {
			n++
		}
	}
	return n
}

// AddSystem регистрирует систему, пересортировывает реестр по
// приоритету (stable: равные приоритеты — в порядке регистрации)
// и один раз вызывает Init. Система с уже занятым именем заменяет
// старую: прежняя получает Destroy.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	for i, existing := range w.systems {
		if existing.Name() == s.Name() {
			w.log.Warn("world: replacing system", zap.String("system", s.Name()))
			existing.Destroy(w)
			w.systems = append(w.systems[:i], w.systems[i+1:]...)
			break
		}
	}
	w.systems = append(w.systems, s)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
	s.Init(w)
}

// System возвращает систему по имени или nil.
func (w *World) System(name string) System {
	for _, s := range w.systems {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// RemoveSystem снимает систему и вызывает её Destroy.
func (w *World) RemoveSystem(name string) {
	for i, s := range w.systems {
		if s.Name() == name {
			s.Destroy(w)
			w.systems = append(w.systems[:i], w.systems[i+1:]...)
			return
		}
	}
}

// OnRemoval регистрирует хук финализации сущности — например,
// отцепить у рендера draw-хэндл.
func (w *World) OnRemoval(hook func(types.EntityID)) {
	if hook != nil {
		w.removalHooks = append(w.removalHooks, hook)
	}
}

// Update применяет отложенные добавления и удаления, затем в порядке
// приоритета обновляет каждую включённую систему.
func (w *World) Update(dt float64) {
	w.applyPending()
	for _, s := range w.systems {
		if s.Enabled() {
			s.Update(w, dt)
		}
	}
}

func (w *World) applyPending() {
	for _, e := range w.pendingAdd {
		if !e.Active {
			// Удалена до первого apply: просто вычищаем компоненты.
			w.clearComponents(e.ID)
			continue
		}
		e.applied = true
		w.entities[e.ID] = e
	}
	w.pendingAdd = w.pendingAdd[:0]

	for _, id := range w.pendingRemove {
		for _, hook := range w.removalHooks {
			hook(id)
		}
		w.clearComponents(id)
		delete(w.entities, id)
	}
	w.pendingRemove = w.pendingRemove[:0]
}

func (w *World) clearComponents(id types.EntityID) {
	delete(w.Transforms, id)
	delete(w.Renderables, id)
	delete(w.Towers, id)
	delete(w.Enemies, id)
	delete(w.Projectiles, id)
	delete(w.PathFollowers, id)
	delete(w.Paths, id)
	delete(w.Spawners, id)
	delete(w.StateMachines, id)
	delete(w.Selectables, id)
	delete(w.Interactables, id)
	delete(w.Upgrades, id)
	delete(w.ChainLightnings, id)
	delete(w.Flamethrowers, id)
	delete(w.SlowEffects, id)
	delete(w.StunEffects, id)
}
