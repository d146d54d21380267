// internal/defs/types.go
package defs

import "image/color"

// TowerClass defines the behavior variant of a tower.
type TowerClass string

const (
	ClassBasic          TowerClass = "BASIC"
	ClassSniper         TowerClass = "SNIPER"
	ClassChainLightning TowerClass = "CHAIN_LIGHTNING"
	ClassFlamethrower   TowerClass = "FLAMETHROWER"
	ClassPiercing       TowerClass = "PIERCING"
)

// ColorDef is an RGBA color as it appears in content files.
type ColorDef struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// RGBA converts the definition to a drawable color.
// A zero alpha means "not set" and resolves to opaque.
func (c ColorDef) RGBA() color.RGBA {
	a := c.A
	if a == 0 {
		a = 255
	}
	return color.RGBA{c.R, c.G, c.B, a}
}

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	Class           TowerClass `yaml:"class"`
	Damage          int        `yaml:"damage"`
	Range           float64    `yaml:"range"`
	FireRate        float64    `yaml:"fire_rate"` // Shots per second
	ProjectileSpeed float64    `yaml:"projectile_speed"`
	Cost            int        `yaml:"cost"`
	Color           ColorDef   `yaml:"color"`

	// Special markers, present only for the matching class.
	Chain  *ChainDef  `yaml:"chain,omitempty"`
	Cone   *ConeDef   `yaml:"cone,omitempty"`
	Pierce *PierceDef `yaml:"pierce,omitempty"`
	Slow   *SlowDef   `yaml:"slow,omitempty"`
}

// ChainDef parameterizes chain lightning.
type ChainDef struct {
	MaxChains  int     `yaml:"max_chains"`
	ChainRange float64 `yaml:"chain_range"`
}

// ConeDef parameterizes the flamethrower cone.
type ConeDef struct {
	Length          float64 `yaml:"length"`
	AngleDeg        float64 `yaml:"angle_deg"` // full cone angle, degrees
	DamagePerSecond float64 `yaml:"damage_per_second"`
}

// PierceDef parameterizes piercing projectiles.
type PierceDef struct {
	MaxDistance float64 `yaml:"max_distance"`
}

// SlowDef parameterizes the slow a projectile applies on hit.
type SlowDef struct {
	Factor   float64 `yaml:"factor"` // speed multiplier, e.g. 0.5
	Duration float64 `yaml:"duration"`
}

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Health int      `yaml:"health"`
	Speed  float64  `yaml:"speed"`
	Damage int      `yaml:"damage"` // lives lost when it reaches the end
	Reward int      `yaml:"reward"`
	Color  ColorDef `yaml:"color"`
}

// UpgradeDefinition is one tier of a tower's upgrade tree.
type UpgradeDefinition struct {
	ID        string   `yaml:"id"`
	TowerID   string   `yaml:"tower_id"`
	Name      string   `yaml:"name"`
	Tier      int      `yaml:"tier"`
	Requires  []string `yaml:"requires"` // prerequisite upgrade IDs
	Cost      int      `yaml:"cost"`

	DamageDelta          int     `yaml:"damage_delta"`
	RangeDelta           float64 `yaml:"range_delta"`
	FireRateDelta        float64 `yaml:"fire_rate_delta"`
	ProjectileSpeedDelta float64 `yaml:"projectile_speed_delta"`

	// Special-parameter deltas, applied when the tower carries the marker.
	ChainDelta *ChainDef `yaml:"chain_delta,omitempty"`
	ConeDelta  *ConeDef  `yaml:"cone_delta,omitempty"`
}

// Waypoint is a path control point in world units.
type Waypoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PathDef describes one enemy corridor of a scene.
type PathDef struct {
	Name      string     `yaml:"name"`
	Width     float64    `yaml:"width"`
	Waypoints []Waypoint `yaml:"waypoints"`
}

// SpawnerDef describes a spawner placed in a scene.
type SpawnerDef struct {
	Name           string  `yaml:"name"`
	Path           string  `yaml:"path"` // PathDef name, may be empty
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Enemy          string  `yaml:"enemy"`
	MaxWaves       int     `yaml:"max_waves"`
	EnemiesPerWave int     `yaml:"enemies_per_wave"`
	SpawnInterval  float64 `yaml:"spawn_interval"`
	IdleDuration   float64 `yaml:"idle_duration"`
	WaveStartDelay float64 `yaml:"wave_start_delay"`
}

// WaveModifiers scale enemy stats for one progression wave.
type WaveModifiers struct {
	SpeedMult  float64 `yaml:"speed_mult"`
	HealthMult float64 `yaml:"health_mult"`
	RewardMult float64 `yaml:"reward_mult"`
}

// WaveSpawnerEntry names a spawner active during a progression wave
// together with its per-wave overrides.
type WaveSpawnerEntry struct {
	Spawner       string  `yaml:"spawner"` // SpawnerDef name
	Enemy         string  `yaml:"enemy"`
	Count         int     `yaml:"count"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	StartDelay    float64 `yaml:"start_delay"`
}

// WaveDefinition описывает параметры для одной волны врагов.
type WaveDefinition struct {
	Number    int                `yaml:"number"`
	Spawners  []WaveSpawnerEntry `yaml:"spawners"`
	Modifiers *WaveModifiers     `yaml:"modifiers,omitempty"`
}

// SceneDefinition is the full content descriptor of one map.
type SceneDefinition struct {
	ID            string           `yaml:"id"`
	Name          string           `yaml:"name"`
	StartingMoney int              `yaml:"starting_money"`
	StartingLives int              `yaml:"starting_lives"`
	MapWidth      float64          `yaml:"map_width"`
	MapHeight     float64          `yaml:"map_height"`
	Paths         []PathDef        `yaml:"paths"`
	Spawners      []SpawnerDef     `yaml:"spawners"`
	// Progression, if non-empty, switches the scene from standalone
	// spawner loops to the orchestrated wave table.
	Progression []WaveDefinition `yaml:"progression,omitempty"`
}
