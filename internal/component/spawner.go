// internal/component/spawner.go
package component

import "hoshi-td/internal/types"

// EnemyStats — характеристики врагов, которых производит спавнер.
type EnemyStats struct {
	Health int
	Speed  float64
	Damage int
	Reward int
}

// WaveSpawner — конфигурация и текущий прогресс спавнера волн.
// Жизненным циклом управляет его собственная машина состояний
// (idle → spawning → waiting → idle|complete).
type WaveSpawner struct {
	SpawnerName    string
	MaxWaves       int
	EnemiesPerWave int
	SpawnInterval  float64
	IdleDuration   float64
	WaveStartDelay float64
	EnemyDefID     string
	Stats          EnemyStats
	PathID         types.EntityID // NoEntity — враги без маршрута

	// Прогресс.
	CurrentWave      int
	SpawnedThisWave  int
	SpawnTimer       float64
	IdleTimer        float64
	DelayTimer       float64
	Orchestrated     bool // переходами waiting управляет внешний оркестратор
	CompleteSignaled bool // сигнал "все волны закончились" уже отправлен
}
