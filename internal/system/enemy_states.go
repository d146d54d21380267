// internal/system/enemy_states.go
package system

import (
	"go.uber.org/zap"

	"hoshi-td/internal/entity"
	"hoshi-td/internal/event"
	"hoshi-td/internal/fsm"
	"hoshi-td/internal/types"
)

// Имена статусов врага.
const (
	StateMoving     = "moving"
	StateDamaged    = "damaged"
	StateStunned    = "stunned"
	StateSlowed     = "slowed"
	StateDead       = "dead"
	StateReachedEnd = "reachedEnd"
)

// Длительность статуса damaged (вспышка от попадания).
const damagedFlashDuration = 0.2

// EnemyContext — контекст машины статусов одного врага.
type EnemyContext struct {
	World  *entity.World
	ID     types.EntityID
	Events *event.Dispatcher
}

func (c *EnemyContext) machine() *fsm.Machine[*EnemyContext] {
	sm, ok := c.World.StateMachines[c.ID]
	if !ok || sm.Machine == nil {
		return nil
	}
	m, _ := sm.Machine.(*fsm.Machine[*EnemyContext])
	return m
}

// NewEnemyMachine собирает машину статусов врага:
// moving / damaged / stunned / slowed / dead / reachedEnd,
// начальное состояние — moving.
func NewEnemyMachine(ctx *EnemyContext, log *zap.Logger) *fsm.Machine[*EnemyContext] {
	m := fsm.New(ctx, log)
	m.Add(&movingState{})
	m.Add(&damagedState{})
	m.Add(&stunnedState{})
	m.Add(&slowedState{})
	m.Add(&deadState{})
	m.Add(&reachedEndState{})
	m.Set(StateMoving)
	return m
}

// moving — обычное следование по маршруту, сама логика движения
// живёт в MovementSystem.
type movingState struct {
	fsm.BaseState[*EnemyContext]
}

func (movingState) Name() string { return StateMoving }

// damaged — короткая вспышка после попадания, возвращается в moving.
type damagedState struct {
	fsm.BaseState[*EnemyContext]
	timer float64
}

func (*damagedState) Name() string { return StateDamaged }

func (s *damagedState) Enter(ctx *EnemyContext, prev string) {
	s.timer = damagedFlashDuration
}

func (s *damagedState) Update(ctx *EnemyContext, dt float64) {
	s.timer -= dt
	if s.timer <= 0 {
		if m := ctx.machine(); m != nil {
			m.Set(StateMoving)
		}
	}
}

// stunned — враг стоит, пока не истечёт StunEffect.
type stunnedState struct {
	fsm.BaseState[*EnemyContext]
}

func (stunnedState) Name() string { return StateStunned }

func (stunnedState) Update(ctx *EnemyContext, dt float64) {
	if _, stunned := ctx.World.StunEffects[ctx.ID]; !stunned {
		if m := ctx.machine(); m != nil {
			m.Set(StateMoving)
		}
	}
}

// slowed — движение с множителем скорости, пока жив SlowEffect.
type slowedState struct {
	fsm.BaseState[*EnemyContext]
}

func (slowedState) Name() string { return StateSlowed }

func (slowedState) Update(ctx *EnemyContext, dt float64) {
	if _, slowed := ctx.World.SlowEffects[ctx.ID]; !slowed {
		if m := ctx.machine(); m != nil {
			m.Set(StateMoving)
		}
	}
}

// dead — терминальное состояние: начисляет награду и убирает сущность.
type deadState struct {
	fsm.BaseState[*EnemyContext]
}

func (deadState) Name() string { return StateDead }

func (deadState) Enter(ctx *EnemyContext, prev string) {
	reward := 0
	if enemy, ok := ctx.World.Enemies[ctx.ID]; ok {
		reward = enemy.Reward
	}
	ctx.World.RemoveEntity(ctx.ID)
	ctx.Events.Dispatch(event.Event{
		Type: event.EnemyDestroyed,
		Data: event.KillPayload{ID: ctx.ID, Reward: reward},
	})
}

func (deadState) CanTransitionTo(string) bool { return false }

// reachedEnd — терминальное состояние: враг дошёл до базы.
// Урон жизням сообщает MovementSystem, здесь только остановка.
type reachedEndState struct {
	fsm.BaseState[*EnemyContext]
}

func (reachedEndState) Name() string { return StateReachedEnd }

func (reachedEndState) Enter(ctx *EnemyContext, prev string) {
	if enemy, ok := ctx.World.Enemies[ctx.ID]; ok {
		enemy.ReachedEnd = true
	}
	ctx.World.RemoveEntity(ctx.ID)
}

func (reachedEndState) CanTransitionTo(string) bool { return false }
