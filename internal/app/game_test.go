// internal/app/game_test.go
package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hoshi-td/internal/component"
	"hoshi-td/internal/defs"
	"hoshi-td/internal/event"
	"hoshi-td/internal/types"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(defs.DefaultLibrary(), 42, zap.NewNop())
	require.NoError(t, g.LoadScene("SCENE_MEADOW"))
	return g
}

func TestLoadSceneInitializesSession(t *testing.T) {
	g := newTestGame(t)

	scene := g.Lib.Scenes["SCENE_MEADOW"]
	assert.Equal(t, scene.StartingMoney, g.Money)
	assert.Equal(t, scene.StartingLives, g.Lives)
	assert.Zero(t, g.Score)

	g.World.Update(0)
	assert.NotEmpty(t, g.World.EntitiesWith(component.KindPath))
	assert.NotEmpty(t, g.World.EntitiesWith(component.KindWaveSpawner))
}

func TestLoadSceneUnknownFails(t *testing.T) {
	g := NewGame(defs.DefaultLibrary(), 42, zap.NewNop())
	assert.Error(t, g.LoadScene("SCENE_MISSING"))
}

func TestPlaceTowerChargesMoney(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)
	def := g.Lib.Towers["TOWER_ARROW"]
	before := g.Money

	id, err := g.PlaceTower("TOWER_ARROW", 600, 600)
	require.NoError(t, err)
	assert.Equal(t, before-def.Cost, g.Money)
	assert.Contains(t, g.World.Towers, id)
	assert.Equal(t, component.TowerBasic, g.World.Towers[id].Class)
}

func TestPlaceTowerInsufficientFunds(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)
	g.Money = 50

	// Огнемёт стоит 75: отказ не трогает ни деньги, ни мир.
	_, err := g.PlaceTower("TOWER_FLAME", 600, 600)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 50, g.Money)
	assert.Empty(t, g.World.Towers)
}

func TestPlaceTowerBlockedByPath(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)

	// Контрольная точка маршрута лежит прямо на дороге.
	wp := g.Scene.Paths[0].Waypoints[1]
	_, err := g.PlaceTower("TOWER_ARROW", wp.X, wp.Y)
	assert.ErrorIs(t, err, ErrBlockedByPath)
}

func TestPlaceTowerOverlapRejected(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)

	_, err := g.PlaceTower("TOWER_ARROW", 600, 600)
	require.NoError(t, err)
	g.World.Update(0)

	_, err = g.PlaceTower("TOWER_ARROW", 610, 600)
	assert.ErrorIs(t, err, ErrOverlapsTower)
}

func TestPlaceTowerUnknownDefinition(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)

	_, err := g.PlaceTower("TOWER_MISSING", 600, 600)
	assert.ErrorIs(t, err, ErrUnknownTower)
}

func TestPlaceChainTowerGetsMarker(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)

	id, err := g.PlaceTower("TOWER_TESLA", 600, 600)
	require.NoError(t, err)
	require.Contains(t, g.World.ChainLightnings, id)
	assert.Equal(t, component.TowerChainLightning, g.World.Towers[id].Class)
}

func TestPlaceFlamethrowerGetsCone(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)

	id, err := g.PlaceTower("TOWER_FLAME", 600, 600)
	require.NoError(t, err)
	require.Contains(t, g.World.Flamethrowers, id)
	// Угол конуса переводится из градусов в радианы.
	def := g.Lib.Towers["TOWER_FLAME"]
	assert.InDelta(t, def.Cone.AngleDeg*math.Pi/180, g.World.Flamethrowers[id].ConeAngle, 1e-6)
}

func TestSellTowerRefundsShare(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)
	def := g.Lib.Towers["TOWER_ARROW"]

	id, err := g.PlaceTower("TOWER_ARROW", 600, 600)
	require.NoError(t, err)
	g.World.Update(0)
	before := g.Money

	require.True(t, g.SellTower(id))
	refund := int(float64(def.Cost) * 0.7)
	assert.Equal(t, before+refund, g.Money)

	g.World.Update(0)
	assert.NotContains(t, g.World.Towers, id)
}

func TestSellIncludesUpgradeInvestment(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)
	g.Money = 1000

	id, err := g.PlaceTower("TOWER_ARROW", 600, 600)
	require.NoError(t, err)
	require.NoError(t, g.ApplyUpgrade(id, "ARROW_DMG_1"))

	def := g.Lib.Towers["TOWER_ARROW"]
	up := g.Lib.Upgrades["TOWER_ARROW"][0]
	before := g.Money

	require.True(t, g.SellTower(id))
	refund := int(float64(def.Cost+up.Cost) * 0.7)
	assert.Equal(t, before+refund, g.Money)
}

func TestApplyUpgradeChangesStats(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)
	g.Money = 1000

	id, err := g.PlaceTower("TOWER_ARROW", 600, 600)
	require.NoError(t, err)
	base := g.World.Towers[id].Damage
	up := g.Lib.Upgrades["TOWER_ARROW"][0]

	require.NoError(t, g.ApplyUpgrade(id, up.ID))
	assert.Equal(t, base+up.DamageDelta, g.World.Towers[id].Damage)
	assert.Equal(t, 2, g.World.Towers[id].Level)

	// Повторно то же улучшение не применить.
	assert.ErrorIs(t, g.ApplyUpgrade(id, up.ID), ErrUpgradeApplied)
}

func TestUpgradePrerequisitesEnforced(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)
	g.Money = 1000

	id, err := g.PlaceTower("TOWER_ARROW", 600, 600)
	require.NoError(t, err)

	// ARROW_DMG_2 требует ARROW_DMG_1.
	assert.ErrorIs(t, g.ApplyUpgrade(id, "ARROW_DMG_2"), ErrUpgradeLocked)

	require.NoError(t, g.ApplyUpgrade(id, "ARROW_DMG_1"))
	assert.NoError(t, g.ApplyUpgrade(id, "ARROW_DMG_2"))
}

func TestAvailableUpgradesHidesLockedTiers(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)
	g.Money = 1000

	id, err := g.PlaceTower("TOWER_ARROW", 600, 600)
	require.NoError(t, err)

	ids := func() []string {
		var out []string
		for _, u := range g.AvailableUpgrades(id) {
			out = append(out, u.ID)
		}
		return out
	}

	assert.Contains(t, ids(), "ARROW_DMG_1")
	assert.NotContains(t, ids(), "ARROW_DMG_2")

	require.NoError(t, g.ApplyUpgrade(id, "ARROW_DMG_1"))
	assert.Contains(t, ids(), "ARROW_DMG_2")
	assert.NotContains(t, ids(), "ARROW_DMG_1")
}

func TestUpgradeInsufficientFunds(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)
	g.Money = 1000

	id, err := g.PlaceTower("TOWER_ARROW", 600, 600)
	require.NoError(t, err)
	g.Money = 0

	assert.ErrorIs(t, g.ApplyUpgrade(id, "ARROW_DMG_1"), ErrUpgradeUnaffordable)
}

func TestKillRewardFeedsSessionResources(t *testing.T) {
	g := newTestGame(t)

	g.Events.Dispatch(event.Event{
		Type: event.EnemyDestroyed,
		Data: event.KillPayload{ID: 7, Reward: 15},
	})

	scene := g.Lib.Scenes["SCENE_MEADOW"]
	assert.Equal(t, scene.StartingMoney+15, g.Money)
	assert.Equal(t, 15, g.Score)
}

func TestLeakDrainsLives(t *testing.T) {
	g := newTestGame(t)

	g.Events.Dispatch(event.Event{
		Type: event.EnemyReachedEnd,
		Data: event.LeakPayload{ID: 7, Damage: 2},
	})

	scene := g.Lib.Scenes["SCENE_MEADOW"]
	assert.Equal(t, scene.StartingLives-2, g.Lives)

	// Жизни не уходят в минус.
	g.Events.Dispatch(event.Event{
		Type: event.EnemyReachedEnd,
		Data: event.LeakPayload{ID: 8, Damage: 1000},
	})
	assert.Zero(t, g.Lives)
}

func TestCycleSpeedWraps(t *testing.T) {
	g := newTestGame(t)
	require.Equal(t, 1.0, g.SpeedMultiplier())

	g.CycleSpeed()
	assert.Equal(t, 2.0, g.SpeedMultiplier())
	g.CycleSpeed()
	assert.Equal(t, 4.0, g.SpeedMultiplier())
	g.CycleSpeed()
	assert.Equal(t, 1.0, g.SpeedMultiplier())
}

func TestSelectAtPicksEntityUnderCursor(t *testing.T) {
	g := newTestGame(t)
	g.World.Update(0)

	id, err := g.PlaceTower("TOWER_ARROW", 600, 600)
	require.NoError(t, err)
	g.World.Update(0)

	g.SelectAt(605, 600)
	assert.Equal(t, id, g.SelectedID)
	assert.True(t, g.World.Selectables[id].Selected)

	// Пустой клик снимает выбор.
	g.SelectAt(100, 100)
	assert.Equal(t, types.NoEntity, g.SelectedID)
	assert.False(t, g.World.Selectables[id].Selected)
}
