// internal/component/kind.go
package component

import "strings"

// Kind — закрытое множество видов компонентов (битовые флаги).
// Заменяет строковые теги типов: запросы по набору компонентов
// сводятся к проверке маски.
type Kind uint32

const (
	KindTransform Kind = 1 << iota
	KindRenderable
	KindTower
	KindEnemy
	KindProjectile
	KindPathFollower
	KindPath
	KindWaveSpawner
	KindStateMachine
	KindSelectable
	KindInteractable
	KindUpgrades
	KindChainLightning
	KindFlamethrower
	KindSlowEffect
	KindStunEffect
)

var kindNames = map[Kind]string{
	KindTransform:      "Transform",
	KindRenderable:     "Renderable",
	KindTower:          "Tower",
	KindEnemy:          "Enemy",
	KindProjectile:     "Projectile",
	KindPathFollower:   "PathFollower",
	KindPath:           "Path",
	KindWaveSpawner:    "WaveSpawner",
	KindStateMachine:   "StateMachine",
	KindSelectable:     "Selectable",
	KindInteractable:   "Interactable",
	KindUpgrades:       "Upgrades",
	KindChainLightning: "ChainLightning",
	KindFlamethrower:   "Flamethrower",
	KindSlowEffect:     "SlowEffect",
	KindStunEffect:     "StunEffect",
}

// Has сообщает, содержит ли маска все биты req.
func (k Kind) Has(req Kind) bool {
	return k&req == req
}

func (k Kind) String() string {
	if k == 0 {
		return "none"
	}
	var parts []string
	for bit := Kind(1); bit != 0 && bit <= k; bit <<= 1 {
		if k&bit == 0 {
			continue
		}
		if name, ok := kindNames[bit]; ok {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}
