// internal/app/upgrade.go
package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"hoshi-td/internal/component"
	"hoshi-td/internal/defs"
	"hoshi-td/internal/types"
)

var (
	ErrNotATower           = errors.New("entity is not a tower")
	ErrUpgradeUnknown      = errors.New("unknown upgrade")
	ErrUpgradeApplied      = errors.New("upgrade already applied")
	ErrUpgradeLocked       = errors.New("upgrade prerequisites not met")
	ErrUpgradeUnaffordable = errors.New("insufficient funds for upgrade")
)

// AvailableUpgrades возвращает улучшения башни, доступные прямо
// сейчас: не применённые и с выполненными требованиями.
func (g *Game) AvailableUpgrades(towerID types.EntityID) []defs.UpgradeDefinition {
	tower, ok := g.World.Towers[towerID]
	if !ok {
		return nil
	}
	applied := g.World.Upgrades[towerID]
	var out []defs.UpgradeDefinition
	for _, ud := range g.Lib.Upgrades[tower.DefID] {
		if applied != nil && applied.HasApplied(ud.ID) {
			continue
		}
		if !g.requirementsMet(applied, ud) {
			continue
		}
		out = append(out, ud)
	}
	return out
}

// ApplyUpgrade применяет улучшение к башне: проверяет требования и
// деньги, накладывает дельты характеристик.
func (g *Game) ApplyUpgrade(towerID types.EntityID, upgradeID string) error {
	tower, ok := g.World.Towers[towerID]
	if !ok {
		return ErrNotATower
	}
	ud := g.findUpgrade(tower.DefID, upgradeID)
	if ud == nil {
		return fmt.Errorf("%w: %s", ErrUpgradeUnknown, upgradeID)
	}
	applied := g.World.Upgrades[towerID]
	if applied != nil && applied.HasApplied(upgradeID) {
		return ErrUpgradeApplied
	}
	if !g.requirementsMet(applied, *ud) {
		return ErrUpgradeLocked
	}
	if g.Money < ud.Cost {
		return ErrUpgradeUnaffordable
	}

	g.Money -= ud.Cost
	tower.Damage += ud.DamageDelta
	tower.Range += ud.RangeDelta
	tower.FireRate += ud.FireRateDelta
	tower.ProjectileSpeed += ud.ProjectileSpeedDelta
	tower.Level++

	if ud.ChainDelta != nil {
		if chain, ok := g.World.ChainLightnings[towerID]; ok {
			chain.MaxChains += ud.ChainDelta.MaxChains
			chain.ChainRange += ud.ChainDelta.ChainRange
		}
	}
	if ud.ConeDelta != nil {
		if cone, ok := g.World.Flamethrowers[towerID]; ok {
			cone.ConeLength += ud.ConeDelta.Length
			cone.DamagePerSecond += ud.ConeDelta.DamagePerSecond
		}
	}

	if applied == nil {
		applied = &component.Upgrades{}
		g.World.Upgrades[towerID] = applied
	}
	applied.Applied = append(applied.Applied, upgradeID)
	g.Log.Info("upgrade applied",
		zap.Uint64("tower", uint64(towerID)),
		zap.String("upgrade", upgradeID),
		zap.Int("level", tower.Level))
	return nil
}

func (g *Game) requirementsMet(applied *component.Upgrades, ud defs.UpgradeDefinition) bool {
	for _, req := range ud.Requires {
		if applied == nil || !applied.HasApplied(req) {
			return false
		}
	}
	return true
}
