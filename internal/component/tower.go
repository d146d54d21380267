// internal/component/tower.go
package component

import (
	"image/color"

	"hoshi-td/internal/types"
)

// TowerClass — закрытое множество поведений башни.
// Заменяет динамические маркеры-«флажки» исходного кода.
type TowerClass uint8

const (
	TowerBasic TowerClass = iota
	TowerSniper
	TowerChainLightning
	TowerFlamethrower
	TowerPiercing
)

type Tower struct {
	DefID           string // ID из towers.yaml
	Class           TowerClass
	Level           int
	Damage          int
	Range           float64
	FireRate        float64 // выстрелов в секунду
	ProjectileSpeed float64
	Cost            int
	Color           color.RGBA

	// Нагрузка снаряда, нулевые значения — маркер отсутствует.
	SlowFactor     float64
	SlowDuration   float64
	PierceDistance float64

	Cooldown float64        // накопленное время с последнего выстрела
	TargetID types.EntityID // текущая цель, NoEntity если нет
}

// ChainLightning — маркер цепной молнии на башне.
// Параметры копируются в снаряд при выстреле.
type ChainLightning struct {
	MaxChains  int
	ChainRange float64
}

// Flamethrower — конусная атака по площади.
type Flamethrower struct {
	ConeLength      float64
	ConeAngle       float64 // полный угол конуса, радианы
	DamagePerSecond float64

	Attacking bool // есть ли сейчас цели в конусе, читает слой отрисовки
}
