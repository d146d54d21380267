// internal/component/enemy.go
package component

// Enemy представляет вражескую сущность.
type Enemy struct {
	DefID     string // ID из enemies.yaml
	Health    int
	MaxHealth int
	Speed     float64
	Damage    int // урон базе при достижении конца пути
	Reward    int // деньги за уничтожение

	ReachedEnd bool // достиг ли враг конца пути
}
