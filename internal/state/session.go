// internal/state/session.go
package state

import (
	"go.uber.org/zap"

	"hoshi-td/internal/app"
	"hoshi-td/internal/config"
	"hoshi-td/internal/event"
	"hoshi-td/internal/fsm"
)

// Состояния игровой сессии.
const (
	SceneSelect = "sceneSelect"
	Playing     = "playing"
	Placement   = "placement"
	Paused      = "paused"
	GameOver    = "gameOver"
	GameWin     = "gameWin"
)

// Игровые системы, замираемые на время установки башни. Рендер и HUD
// не входят: они живут вне мира и продолжают рисовать.
var gameplaySystems = []string{
	"status_effect",
	"state_machine",
	"movement",
	"tower",
	"flamethrower",
	"projectile",
	"wave_progression",
}

// NewSessionMachine собирает машину состояний сессии и привязывает
// её к игре. Начальное состояние — выбор сцены.
func NewSessionMachine(g *app.Game, log *zap.Logger) *fsm.Machine[*app.Game] {
	m := fsm.New(g, log)
	m.Add(&sceneSelectState{})
	m.Add(&playingState{})
	m.Add(&placementState{})
	m.Add(&pausedState{})
	m.Add(&resultState{name: GameOver, event: event.GameOver})
	m.Add(&resultState{name: GameWin, event: event.GameWin})
	g.Session = m
	m.Set(SceneSelect)
	return m
}

// sceneSelect: мир не существует или заморожен, ждём выбора сцены.
// Слой ввода вызывает StartScene.
type sceneSelectState struct {
	fsm.BaseState[*app.Game]
}

func (sceneSelectState) Name() string { return SceneSelect }

// StartScene загружает сцену и запускает сессию.
func StartScene(g *app.Game, sceneID string) error {
	if err := g.LoadScene(sceneID); err != nil {
		return err
	}
	g.Session.Set(Playing)
	return nil
}

// playing: живая симуляция с проверкой условий конца сессии.
type playingState struct {
	fsm.BaseState[*app.Game]
}

func (playingState) Name() string { return Playing }

func (playingState) Update(g *app.Game, dt float64) {
	g.Step(dt)
	switch {
	case g.Lives <= 0:
		g.Session.Set(GameOver)
	case g.WavesComplete() && !g.EnemiesRemain():
		g.Session.Set(GameWin)
	}
}

// placement: мир идёт, но боевые системы заморожены, курсор ведёт
// превью установки.
type placementState struct {
	fsm.BaseState[*app.Game]
}

func (placementState) Name() string { return Placement }

func (placementState) Enter(g *app.Game, prev string) {
	for _, name := range gameplaySystems {
		if s := g.World.System(name); s != nil {
			s.SetEnabled(false)
		}
	}
}

func (placementState) Update(g *app.Game, dt float64) {
	g.Step(dt)
	if g.Lives <= 0 {
		g.Session.Set(GameOver)
	}
}

func (placementState) Exit(g *app.Game, next string) {
	g.ClearPreview()
	for _, name := range gameplaySystems {
		if s := g.World.System(name); s != nil {
			s.SetEnabled(true)
		}
	}
}

// paused: симуляция стоит, мир не обновляется.
type pausedState struct {
	fsm.BaseState[*app.Game]
}

func (pausedState) Name() string { return Paused }

func (pausedState) Enter(g *app.Game, prev string) {
	g.Log.Info("session paused")
}

func (pausedState) CanTransitionTo(next string) bool {
	// Из паузы нельзя проиграть или выиграть.
	return next == Playing || next == SceneSelect
}

// resultState — экран результата (поражение или победа). Показывает
// итог и спустя паузу возвращает в выбор сцены.
type resultState struct {
	fsm.BaseState[*app.Game]
	name  string
	event event.EventType
	timer float64
}

func (s *resultState) Name() string { return s.name }

func (s *resultState) Enter(g *app.Game, prev string) {
	s.timer = 0
	g.Deselect()
	g.Events.Dispatch(event.Event{Type: s.event, Data: g.Result()})
	g.Log.Info("session finished",
		zap.String("result", s.name),
		zap.Int("score", g.Score),
		zap.Int("wave", g.CurrentWave()))
}

func (s *resultState) Update(g *app.Game, dt float64) {
	s.timer += dt
	if s.timer >= config.ResultScreenDelay {
		g.Session.Set(SceneSelect)
	}
}

func (s *resultState) CanTransitionTo(next string) bool {
	return next == SceneSelect
}
