// internal/render/hud.go
package render

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"hoshi-td/internal/app"
	"hoshi-td/internal/config"
	"hoshi-td/internal/state"
)

// HUD — верхняя панель: ресурсы, волна, кнопки скорости и паузы.
type HUD struct {
	game *app.Game
	face font.Face

	// Кликабельные зоны, проверяет слой ввода.
	SpeedRect image.Rectangle
	PauseRect image.Rectangle
}

func NewHUD(g *app.Game) *HUD {
	return &HUD{
		game:      g,
		face:      basicfont.Face7x13,
		SpeedRect: image.Rect(config.ScreenWidth-120, 10, config.ScreenWidth-70, 40),
		PauseRect: image.Rect(config.ScreenWidth-60, 10, config.ScreenWidth-10, 40),
	}
}

func (h *HUD) Draw(screen *ebiten.Image) {
	g := h.game
	if g.Session == nil {
		return
	}

	switch g.Session.CurrentName() {
	case state.SceneSelect:
		h.drawSceneSelect(screen)
		return
	case state.GameOver:
		h.drawResult(screen, "DEFEAT")
	case state.GameWin:
		h.drawResult(screen, "VICTORY")
	case state.Paused:
		text.Draw(screen, "PAUSED", h.face, config.ScreenWidth/2-24, config.ScreenHeight/2, config.TextLightColor)
	}

	if g.Scene == nil {
		return
	}
	line := fmt.Sprintf("money %d   lives %d   score %d   wave %d   x%.0f",
		g.Money, g.Lives, g.Score, g.CurrentWave(), g.SpeedMultiplier())
	text.Draw(screen, line, h.face, 12, 26, config.TextLightColor)

	h.drawButton(screen, h.SpeedRect, fmt.Sprintf("x%.0f", g.SpeedMultiplier()))
	label := "||"
	if g.Session.CurrentName() == state.Paused {
		label = ">"
	}
	h.drawButton(screen, h.PauseRect, label)
}

func (h *HUD) drawSceneSelect(screen *ebiten.Image) {
	y := 60
	text.Draw(screen, "select scene:", h.face, 12, 30, config.TextLightColor)
	for i, id := range h.game.SceneIDs() {
		scene := h.game.Lib.Scenes[id]
		line := fmt.Sprintf("%d. %s", i+1, scene.Name)
		text.Draw(screen, line, h.face, 24, y, config.TextLightColor)
		y += 20
	}
}

func (h *HUD) drawResult(screen *ebiten.Image, title string) {
	res := h.game.Result()
	text.Draw(screen, title, h.face, config.ScreenWidth/2-24, config.ScreenHeight/2-20, config.TextLightColor)
	line := fmt.Sprintf("score %d  wave %d", res.Score, res.Wave)
	text.Draw(screen, line, h.face, config.ScreenWidth/2-50, config.ScreenHeight/2, config.TextLightColor)
}

func (h *HUD) drawButton(screen *ebiten.Image, r image.Rectangle, label string) {
	vector.StrokeRect(screen,
		float32(r.Min.X), float32(r.Min.Y),
		float32(r.Dx()), float32(r.Dy()),
		1, config.TextLightColor, false)
	text.Draw(screen, label, h.face, r.Min.X+8, r.Min.Y+20, config.TextLightColor)
}

// Buttons отдаёт кликабельные зоны HUD слою ввода.
func (r *Renderer) Buttons() (speed, pause image.Rectangle) {
	return r.hud.SpeedRect, r.hud.PauseRect
}
