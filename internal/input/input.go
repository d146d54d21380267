// internal/input/input.go
package input

import (
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go.uber.org/zap"

	"hoshi-td/internal/app"
	"hoshi-td/internal/state"
)

// Controller переводит сырой ввод ebiten в действия сессии.
// Управление: клик — выбор, 1..9 — режим установки башни,
// ESC/правый клик — отмена, P — пауза, Tab — скорость, S — продажа,
// U — первое доступное улучшение выбранной башни.
type Controller struct {
	game *app.Game

	speedRect image.Rectangle
	pauseRect image.Rectangle

	placingDef string
	towerKeys  []string
}

func NewController(g *app.Game, speedRect, pauseRect image.Rectangle) *Controller {
	return &Controller{
		game:      g,
		speedRect: speedRect,
		pauseRect: pauseRect,
		towerKeys: sortedTowerIDs(g),
	}
}

func sortedTowerIDs(g *app.Game) []string {
	ids := make([]string, 0, len(g.Lib.Towers))
	for id := range g.Lib.Towers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Update обрабатывает ввод текущего кадра. Вызывается до Game.Update.
func (c *Controller) Update() {
	g := c.game
	if g.Session == nil {
		return
	}

	switch g.Session.CurrentName() {
	case state.SceneSelect:
		c.updateSceneSelect()
	case state.Playing:
		c.updatePlaying()
	case state.Placement:
		c.updatePlacement()
	case state.Paused:
		if inpututil.IsKeyJustPressed(ebiten.KeyP) || c.clicked(c.pauseRect) {
			g.Session.Set(state.Playing)
		}
	}
}

func (c *Controller) updateSceneSelect() {
	ids := c.game.SceneIDs()
	for i, id := range ids {
		if i >= 9 {
			break
		}
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			if err := state.StartScene(c.game, id); err != nil {
				c.game.Log.Error("failed to start scene", zap.Error(err))
			}
			return
		}
	}
}

func (c *Controller) updatePlaying() {
	g := c.game

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || c.clicked(c.pauseRect) {
		g.Session.Set(state.Paused)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || c.clicked(c.speedRect) {
		g.CycleSpeed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.SellTower(g.SelectedID)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		if ups := g.AvailableUpgrades(g.SelectedID); len(ups) > 0 {
			if err := g.ApplyUpgrade(g.SelectedID, ups[0].ID); err != nil {
				g.Log.Warn("upgrade rejected", zap.Error(err))
			}
		}
	}

	for i, id := range c.towerKeys {
		if i >= 9 {
			break
		}
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			c.placingDef = id
			g.Session.Set(state.Placement)
			return
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := cursor()
		if !c.onHUD(x, y) {
			g.SelectAt(x, y)
		}
	}
}

func (c *Controller) updatePlacement() {
	g := c.game

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.Session.Set(state.Playing)
		return
	}

	x, y := cursor()
	g.UpdatePreview(c.placingDef, x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !c.onHUD(x, y) {
		if _, err := g.PlaceTower(c.placingDef, x, y); err == nil {
			g.Session.Set(state.Playing)
		} else {
			g.Log.Debug("placement rejected", zap.Error(err))
		}
	}
}

func (c *Controller) clicked(r image.Rectangle) bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y).In(r)
}

func (c *Controller) onHUD(x, y float64) bool {
	p := image.Pt(int(x), int(y))
	return p.In(c.speedRect) || p.In(c.pauseRect)
}

func cursor() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}
