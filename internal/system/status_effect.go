// internal/system/status_effect.go
package system

import (
	"hoshi-td/internal/component"
	"hoshi-td/internal/entity"
)

// StatusEffectSystem управляет жизненным циклом эффектов,
// таких как замедление и оглушение.
type StatusEffectSystem struct {
	entity.Base
}

func NewStatusEffectSystem(priority int) *StatusEffectSystem {
	return &StatusEffectSystem{Base: entity.NewBase("status_effect", priority)}
}

func (s *StatusEffectSystem) Required() component.Kind {
	return component.KindEnemy
}

// Update обрабатывает все активные эффекты.
func (s *StatusEffectSystem) Update(w *entity.World, dt float64) {
	// Обновление эффектов замедления.
	for id, effect := range w.SlowEffects {
		effect.Timer -= dt
		if effect.Timer <= 0 {
			delete(w.SlowEffects, id)
		}
	}

	// Обновление эффектов оглушения.
	for id, effect := range w.StunEffects {
		effect.Timer -= dt
		if effect.Timer <= 0 {
			delete(w.StunEffects, id)
		}
	}
}
