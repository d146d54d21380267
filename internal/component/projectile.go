// internal/component/projectile.go
package component

import (
	"image/color"

	"hoshi-td/internal/types"
)

// Projectile представляет летящий снаряд.
type Projectile struct {
	TargetID types.EntityID
	Speed    float64
	Damage   int
	Color    color.RGBA

	// Сквозной снаряд не исчезает после первого попадания,
	// летит по направлению до MaxDistance.
	Pierce      bool
	Direction   float64
	Traveled    float64
	MaxDistance float64
	pierced     map[types.EntityID]struct{}

	SlowsTarget  bool    // Замедляет ли этот снаряд цель
	SlowDuration float64 // На какое время замедляет
	SlowFactor   float64 // Насколько замедляет (например, 0.5)

	Chain *ChainState // nil, если снаряд не цепной
}

// WasPierced сообщает, пробивал ли сквозной снаряд эту цель.
func (p *Projectile) WasPierced(id types.EntityID) bool {
	_, ok := p.pierced[id]
	return ok
}

// MarkPierced отмечает цель пробитой.
func (p *Projectile) MarkPierced(id types.EntityID) {
	if p.pierced == nil {
		p.pierced = make(map[types.EntityID]struct{})
	}
	p.pierced[id] = struct{}{}
}

// ChainState — состояние цепной молнии одного снаряда.
type ChainState struct {
	Count int
	Max   int
	Range float64
	Hit   map[types.EntityID]struct{} // уже поражённые цели
}

// NewChainState создаёт состояние цепи с пустым множеством попаданий.
func NewChainState(maxChains int, chainRange float64) *ChainState {
	return &ChainState{
		Max:   maxChains,
		Range: chainRange,
		Hit:   make(map[types.EntityID]struct{}),
	}
}

// WasHit сообщает, поражала ли цепь эту цель.
func (c *ChainState) WasHit(id types.EntityID) bool {
	_, ok := c.Hit[id]
	return ok
}

// MarkHit добавляет цель в множество поражённых.
func (c *ChainState) MarkHit(id types.EntityID) {
	c.Hit[id] = struct{}{}
}
