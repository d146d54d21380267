// internal/defs/loader.go
package defs

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Library holds every loaded content definition. It is passed
// explicitly to whoever needs content — no package-level globals.
type Library struct {
	Towers   map[string]TowerDefinition
	Enemies  map[string]EnemyDefinition
	Upgrades map[string][]UpgradeDefinition // keyed by tower ID
	Scenes   map[string]SceneDefinition
}

// Load reads towers.yaml, enemies.yaml, upgrades.yaml and scenes/*.yaml
// from dir and populates a Library.
func Load(dir string, log *zap.Logger) (*Library, error) {
	if log == nil {
		log = zap.NewNop()
	}
	lib := &Library{
		Towers:   make(map[string]TowerDefinition),
		Enemies:  make(map[string]EnemyDefinition),
		Upgrades: make(map[string][]UpgradeDefinition),
		Scenes:   make(map[string]SceneDefinition),
	}

	var towers []TowerDefinition
	if err := readYAML(filepath.Join(dir, "towers.yaml"), &towers); err != nil {
		return nil, fmt.Errorf("load tower definitions: %w", err)
	}
	for _, def := range towers {
		lib.Towers[def.ID] = def
	}

	var enemies []EnemyDefinition
	if err := readYAML(filepath.Join(dir, "enemies.yaml"), &enemies); err != nil {
		return nil, fmt.Errorf("load enemy definitions: %w", err)
	}
	for _, def := range enemies {
		lib.Enemies[def.ID] = def
	}

	var upgrades []UpgradeDefinition
	if err := readYAML(filepath.Join(dir, "upgrades.yaml"), &upgrades); err != nil {
		return nil, fmt.Errorf("load upgrade definitions: %w", err)
	}
	for _, def := range upgrades {
		lib.Upgrades[def.TowerID] = append(lib.Upgrades[def.TowerID], def)
	}

	scenes, err := filepath.Glob(filepath.Join(dir, "scenes", "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	for _, path := range scenes {
		var scene SceneDefinition
		if err := readYAML(path, &scene); err != nil {
			return nil, fmt.Errorf("load scene %s: %w", path, err)
		}
		lib.Scenes[scene.ID] = scene
	}

	log.Info("content loaded",
		zap.Int("towers", len(lib.Towers)),
		zap.Int("enemies", len(lib.Enemies)),
		zap.Int("upgrade_defs", len(upgrades)),
		zap.Int("scenes", len(lib.Scenes)))
	return lib, nil
}

// Validate checks cross-references inside the library: spawners must
// name known enemies and paths, upgrades must name known towers.
func (l *Library) Validate() error {
	for id, scene := range l.Scenes {
		paths := make(map[string]bool, len(scene.Paths))
		for _, p := range scene.Paths {
			paths[p.Name] = true
		}
		for _, sp := range scene.Spawners {
			if _, ok := l.Enemies[sp.Enemy]; !ok {
				return fmt.Errorf("scene %s: spawner %s references unknown enemy %q", id, sp.Name, sp.Enemy)
			}
			if sp.Path != "" && !paths[sp.Path] {
				return fmt.Errorf("scene %s: spawner %s references unknown path %q", id, sp.Name, sp.Path)
			}
		}
	}
	for towerID := range l.Upgrades {
		if _, ok := l.Towers[towerID]; !ok {
			return fmt.Errorf("upgrades reference unknown tower %q", towerID)
		}
	}
	return nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return nil
}
