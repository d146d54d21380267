// internal/defs/loader_test.go
package defs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func writeTestCatalog(t *testing.T, dir string) {
	t.Helper()
	writeContent(t, dir, "towers.yaml", `
- id: TOWER_CANNON
  name: Cannon
  class: BASIC
  damage: 12
  range: 110
  fire_rate: 0.8
  projectile_speed: 250
  cost: 60
  color: {r: 200, g: 200, b: 40}
- id: TOWER_STORM
  name: Storm
  class: CHAIN_LIGHTNING
  damage: 6
  range: 80
  fire_rate: 1.2
  projectile_speed: 300
  cost: 120
  chain:
    max_chains: 4
    chain_range: 65
`)
	writeContent(t, dir, "enemies.yaml", `
- id: ENEMY_SCOUT
  name: Scout
  health: 30
  speed: 90
  damage: 1
  reward: 8
`)
	writeContent(t, dir, "upgrades.yaml", `
- id: CANNON_RANGE_1
  tower_id: TOWER_CANNON
  name: Long Barrel
  tier: 1
  cost: 35
  range_delta: 25
`)
	writeContent(t, dir, "scenes/forest.yaml", `
id: SCENE_FOREST
name: Forest
starting_money: 200
starting_lives: 15
map_width: 1000
map_height: 800
paths:
  - name: trail
    width: 36
    waypoints:
      - {x: 0, y: 100}
      - {x: 500, y: 100}
spawners:
  - name: north
    path: trail
    x: 0
    y: 100
    enemy: ENEMY_SCOUT
    max_waves: 2
    enemies_per_wave: 4
    spawn_interval: 0.8
    idle_duration: 4
`)
}

func TestLoadReadsFullCatalog(t *testing.T) {
	dir := t.TempDir()
	writeTestCatalog(t, dir)

	lib, err := Load(dir, nil)
	require.NoError(t, err)

	require.Contains(t, lib.Towers, "TOWER_CANNON")
	assert.Equal(t, 12, lib.Towers["TOWER_CANNON"].Damage)
	assert.Equal(t, ClassBasic, lib.Towers["TOWER_CANNON"].Class)

	storm := lib.Towers["TOWER_STORM"]
	require.NotNil(t, storm.Chain)
	assert.Equal(t, 4, storm.Chain.MaxChains)
	assert.Equal(t, 65.0, storm.Chain.ChainRange)

	require.Contains(t, lib.Enemies, "ENEMY_SCOUT")
	assert.Equal(t, 90.0, lib.Enemies["ENEMY_SCOUT"].Speed)

	require.Len(t, lib.Upgrades["TOWER_CANNON"], 1)
	assert.Equal(t, 25.0, lib.Upgrades["TOWER_CANNON"][0].RangeDelta)

	scene, ok := lib.Scenes["SCENE_FOREST"]
	require.True(t, ok)
	assert.Equal(t, 200, scene.StartingMoney)
	require.Len(t, scene.Paths, 1)
	assert.Equal(t, 36.0, scene.Paths[0].Width)
	require.Len(t, scene.Spawners, 1)
	assert.Equal(t, "trail", scene.Spawners[0].Path)

	assert.NoError(t, lib.Validate())
}

func TestLoadMissingCatalogFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestLoadMalformedYAMLFails(t *testing.T) {
	dir := t.TempDir()
	writeTestCatalog(t, dir)
	writeContent(t, dir, "towers.yaml", "{not: [valid")

	_, err := Load(dir, nil)
	assert.Error(t, err)
}

func TestValidateUnknownEnemy(t *testing.T) {
	dir := t.TempDir()
	writeTestCatalog(t, dir)
	writeContent(t, dir, "scenes/broken.yaml", `
id: SCENE_BROKEN
name: Broken
spawners:
  - name: ghost
    enemy: ENEMY_MISSING
`)

	lib, err := Load(dir, nil)
	require.NoError(t, err)
	err = lib.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENEMY_MISSING")
}

func TestValidateUnknownPath(t *testing.T) {
	dir := t.TempDir()
	writeTestCatalog(t, dir)
	writeContent(t, dir, "scenes/broken.yaml", `
id: SCENE_BROKEN
name: Broken
spawners:
  - name: lost
    path: nowhere
    enemy: ENEMY_SCOUT
`)

	lib, err := Load(dir, nil)
	require.NoError(t, err)
	err = lib.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nowhere")
}

func TestValidateUnknownUpgradeTower(t *testing.T) {
	dir := t.TempDir()
	writeTestCatalog(t, dir)
	writeContent(t, dir, "upgrades.yaml", `
- id: GHOST_1
  tower_id: TOWER_MISSING
  name: Ghost
  tier: 1
  cost: 10
`)

	lib, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Error(t, lib.Validate())
}

func TestColorDefaultsToOpaque(t *testing.T) {
	c := ColorDef{R: 10, G: 20, B: 30}
	assert.EqualValues(t, 255, c.RGBA().A)

	c.A = 128
	assert.EqualValues(t, 128, c.RGBA().A)
}

func TestDefaultLibraryIsConsistent(t *testing.T) {
	lib := DefaultLibrary()
	require.NoError(t, lib.Validate())
	assert.NotEmpty(t, lib.Towers)
	assert.NotEmpty(t, lib.Enemies)
	assert.Contains(t, lib.Scenes, "SCENE_MEADOW")
}
