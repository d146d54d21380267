// internal/defs/defaults.go
package defs

// DefaultLibrary — вшитый контент на случай отсутствия каталога
// с описаниями: пара башен, пара врагов и одна сцена.
func DefaultLibrary() *Library {
	towers := []TowerDefinition{
		{
			ID: "TOWER_ARROW", Name: "Arrow", Class: ClassBasic,
			Damage: 10, Range: 100, FireRate: 1.0, ProjectileSpeed: 200, Cost: 50,
			Color: ColorDef{R: 255, G: 50, B: 50},
		},
		{
			ID: "TOWER_TESLA", Name: "Tesla", Class: ClassChainLightning,
			Damage: 8, Range: 90, FireRate: 0.8, ProjectileSpeed: 300, Cost: 100,
			Color: ColorDef{R: 50, G: 100, B: 255},
			Chain: &ChainDef{MaxChains: 3, ChainRange: 70},
		},
		{
			ID: "TOWER_FLAME", Name: "Flame", Class: ClassFlamethrower,
			Damage: 0, Range: 60, FireRate: 0, ProjectileSpeed: 0, Cost: 75,
			Color: ColorDef{R: 255, G: 140, B: 0},
			Cone:  &ConeDef{Length: 60, AngleDeg: 45, DamagePerSecond: 20},
		},
	}
	enemies := []EnemyDefinition{
		{ID: "ENEMY_NORMAL", Name: "Runner", Health: 50, Speed: 60, Damage: 1, Reward: 10, Color: ColorDef{R: 220, G: 60, B: 60}},
		{ID: "ENEMY_TOUGH", Name: "Brute", Health: 150, Speed: 40, Damage: 2, Reward: 25, Color: ColorDef{R: 120, G: 60, B: 60}},
	}
	upgrades := []UpgradeDefinition{
		{ID: "ARROW_DMG_1", TowerID: "TOWER_ARROW", Name: "Sharper Arrows", Tier: 1, Cost: 40, DamageDelta: 5},
		{ID: "ARROW_DMG_2", TowerID: "TOWER_ARROW", Name: "Barbed Arrows", Tier: 2, Requires: []string{"ARROW_DMG_1"}, Cost: 80, DamageDelta: 10},
		{ID: "TESLA_CHAIN_1", TowerID: "TOWER_TESLA", Name: "Longer Arcs", Tier: 1, Cost: 60, ChainDelta: &ChainDef{MaxChains: 1, ChainRange: 20}},
	}
	scene := SceneDefinition{
		ID: "SCENE_MEADOW", Name: "Meadow",
		StartingMoney: 150, StartingLives: 20,
		MapWidth: 1200, MapHeight: 900,
		Paths: []PathDef{
			{
				Name: "main", Width: 40,
				Waypoints: []Waypoint{{X: 0, Y: 450}, {X: 400, Y: 450}, {X: 400, Y: 200}, {X: 800, Y: 200}, {X: 800, Y: 700}, {X: 1200, Y: 700}},
			},
		},
		Spawners: []SpawnerDef{
			{
				Name: "west", Path: "main", X: 0, Y: 450, Enemy: "ENEMY_NORMAL",
				MaxWaves: 3, EnemiesPerWave: 5, SpawnInterval: 1.0, IdleDuration: 5.0,
			},
		},
	}

	lib := &Library{
		Towers:   make(map[string]TowerDefinition),
		Enemies:  make(map[string]EnemyDefinition),
		Upgrades: make(map[string][]UpgradeDefinition),
		Scenes:   map[string]SceneDefinition{scene.ID: scene},
	}
	for _, def := range towers {
		lib.Towers[def.ID] = def
	}
	for _, def := range enemies {
		lib.Enemies[def.ID] = def
	}
	for _, def := range upgrades {
		lib.Upgrades[def.TowerID] = append(lib.Upgrades[def.TowerID], def)
	}
	return lib
}
