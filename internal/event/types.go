// internal/event/types.go
package event

import "hoshi-td/internal/types"

const (
	WaveStarted       EventType = "WaveStarted"       // Волна началась
	EnemySpawned      EventType = "EnemySpawned"      // Враг появился
	WaveCompleted     EventType = "WaveCompleted"     // Волна закончилась
	AllWavesCompleted EventType = "AllWavesCompleted" // Все волны закончились
	EnemyDestroyed    EventType = "EnemyDestroyed"    // Враг уничтожен
	EnemyReachedEnd   EventType = "EnemyReachedEnd"   // Враг дошёл до конца пути
	TowerPlaced       EventType = "TowerPlaced"       // Башня построена
	TowerSold         EventType = "TowerSold"         // Башня продана
	TowerSelected     EventType = "TowerSelected"
	EnemySelected     EventType = "EnemySelected"
	Deselected        EventType = "Deselected"
	PlacementPreview  EventType = "PlacementPreview" // Превью установки обновилось
	GameOver          EventType = "GameOver"
	GameWin           EventType = "GameWin"
)

// Типизированные полезные нагрузки событий: у каждого EventType —
// своя структура в поле Event.Data.

// WavePayload — WaveStarted / WaveCompleted.
type WavePayload struct {
	Spawner string
	Wave    int
}

// EntityPayload — EnemySpawned / TowerSelected / EnemySelected.
type EntityPayload struct {
	ID types.EntityID
}

// KillPayload — EnemyDestroyed.
type KillPayload struct {
	ID     types.EntityID
	Reward int
}

// LeakPayload — EnemyReachedEnd.
type LeakPayload struct {
	ID     types.EntityID
	Damage int
}

// PlacePayload — TowerPlaced / TowerSold.
type PlacePayload struct {
	ID   types.EntityID
	Cost int
}

// PreviewPayload — PlacementPreview.
type PreviewPayload struct {
	X, Y  float64
	Legal bool
}

// ResultPayload — GameOver / GameWin, финальный снимок сессии.
type ResultPayload struct {
	Score int
	Wave  int
	Money int
}
