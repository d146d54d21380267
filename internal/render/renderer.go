// internal/render/renderer.go
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"hoshi-td/internal/app"
	"hoshi-td/internal/component"
	"hoshi-td/internal/config"
)

// Renderer рисует мир: маршруты, сущности, конусы огнемётов,
// превью установки и HUD. Системы мира в отрисовку не лезут — они
// только выставляют поля Renderable.
type Renderer struct {
	game *app.Game
	hud  *HUD
}

func NewRenderer(g *app.Game) *Renderer {
	return &Renderer{game: g, hud: NewHUD(g)}
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	w := r.game.World
	if w == nil {
		r.hud.Draw(screen)
		return
	}

	r.drawPaths(screen)
	r.drawCones(screen)
	r.drawEntities(screen)
	r.drawSelection(screen)
	r.drawPreview(screen)
	r.hud.Draw(screen)
}

func (r *Renderer) drawPaths(screen *ebiten.Image) {
	w := r.game.World
	for _, path := range w.Paths {
		for i := 0; i+1 < len(path.Waypoints); i++ {
			a, b := path.Waypoints[i], path.Waypoints[i+1]
			vector.StrokeLine(screen,
				float32(a.X), float32(a.Y),
				float32(b.X), float32(b.Y),
				float32(path.Width), config.PathColor, true)
		}
	}
}

func (r *Renderer) drawEntities(screen *ebiten.Image) {
	w := r.game.World
	for _, id := range w.EntitiesWith(component.KindRenderable | component.KindTransform) {
		rend := w.Renderables[id]
		if !rend.Visible {
			continue
		}
		t := w.Transforms[id]
		x, y := float32(t.X), float32(t.Y)
		vector.DrawFilledCircle(screen, x, y, rend.Radius, rend.Color, true)
		if rend.HasStroke {
			vector.StrokeCircle(screen, x, y, rend.Radius, 2, color.White, true)
		}
		if rend.ShowHealthBar {
			r.drawHealthBar(screen, x, y-rend.Radius-6, rend.Radius*2, rend.HealthFrac)
		}
	}
}

func (r *Renderer) drawHealthBar(screen *ebiten.Image, x, y, width, frac float32) {
	if frac < 0 {
		frac = 0
	}
	vector.DrawFilledRect(screen, x-width/2, y, width, 3, config.HealthBarBackColor, false)
	vector.DrawFilledRect(screen, x-width/2, y, width*frac, 3, config.HealthBarColor, false)
}

// drawCones показывает активные конусы огнемётов двумя лучами.
func (r *Renderer) drawCones(screen *ebiten.Image) {
	w := r.game.World
	for _, id := range w.EntitiesWith(component.KindFlamethrower | component.KindTransform) {
		cone := w.Flamethrowers[id]
		if !cone.Attacking {
			continue
		}
		t := w.Transforms[id]
		half := cone.ConeAngle / 2
		for _, a := range [2]float64{t.Rotation - half, t.Rotation + half} {
			vector.StrokeLine(screen,
				float32(t.X), float32(t.Y),
				float32(t.X+math.Cos(a)*cone.ConeLength),
				float32(t.Y+math.Sin(a)*cone.ConeLength),
				1.5, config.ConeColor, true)
		}
	}
}

func (r *Renderer) drawSelection(screen *ebiten.Image) {
	g := r.game
	id := g.SelectedID
	t, ok := g.World.Transforms[id]
	if !ok {
		return
	}
	rend := g.World.Renderables[id]
	radius := float32(config.TowerRadius)
	if rend != nil {
		radius = rend.Radius
	}
	vector.StrokeCircle(screen, float32(t.X), float32(t.Y), radius+4, 2, config.SelectionColor, true)
	if tower, ok := g.World.Towers[id]; ok {
		vector.StrokeCircle(screen, float32(t.X), float32(t.Y), float32(tower.Range), 1, config.RangeColor, true)
	}
}

func (r *Renderer) drawPreview(screen *ebiten.Image) {
	g := r.game
	p := g.Preview
	if p == nil {
		return
	}
	c := config.PreviewOkColor
	if !p.Legal {
		c = config.PreviewBadColor
	}
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), config.TowerRadius, c, true)
	if def, ok := g.Lib.Towers[p.DefID]; ok {
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(def.Range), 1, config.RangeColor, true)
	}
}
