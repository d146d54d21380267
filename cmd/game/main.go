// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hoshi-td/internal/app"
	"hoshi-td/internal/config"
	"hoshi-td/internal/defs"
	"hoshi-td/internal/input"
	"hoshi-td/internal/render"
	"hoshi-td/internal/state"
)

type appDriver struct {
	game       *app.Game
	controller *input.Controller
	renderer   *render.Renderer
	watcher    *defs.Watcher
	contentDir string
	log        *zap.Logger
	lastUpdate time.Time
}

func (a *appDriver) Update() error {
	now := time.Now()
	dt := now.Sub(a.lastUpdate).Seconds()
	if dt > config.MaxDeltaTime {
		dt = config.MaxDeltaTime
	}
	a.lastUpdate = now

	a.drainWatcher()
	a.controller.Update()
	a.game.Update(dt)
	return nil
}

// drainWatcher подхватывает изменённый контент. Библиотека
// подменяется на месте, живая сцена играет со старыми значениями
// до перезапуска.
func (a *appDriver) drainWatcher() {
	if a.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case name, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			a.log.Info("content file changed", zap.String("file", name))
			changed = true
		case err := <-a.watcher.Errors:
			a.log.Warn("content watcher error", zap.Error(err))
		default:
			if changed {
				a.reloadLibrary()
			}
			return
		}
	}
}

func (a *appDriver) reloadLibrary() {
	lib, err := defs.Load(a.contentDir, a.log)
	if err == nil {
		err = lib.Validate()
	}
	if err != nil {
		a.log.Error("content reload failed, keeping previous library", zap.Error(err))
		return
	}
	*a.game.Lib = *lib
	a.log.Info("content library reloaded")
}

func (a *appDriver) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen)
}

func (a *appDriver) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	lib, err := defs.Load(cfg.Content.Dir, logger)
	if err != nil {
		logger.Warn("content load failed, using built-in definitions", zap.Error(err))
		lib = defs.DefaultLibrary()
	}
	if err := lib.Validate(); err != nil {
		logger.Fatal("content validation failed", zap.Error(err))
	}

	game := app.NewGame(lib, cfg.Game.Seed, logger)
	state.NewSessionMachine(game, logger)

	var watcher *defs.Watcher
	if cfg.Content.Watch {
		watcher, err = defs.NewWatcher(cfg.Content.Dir)
		if err != nil {
			logger.Warn("content watcher unavailable", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	renderer := render.NewRenderer(game)
	speedRect, pauseRect := renderer.Buttons()
	driver := &appDriver{
		game:       game,
		controller: input.NewController(game, speedRect, pauseRect),
		renderer:   renderer,
		watcher:    watcher,
		contentDir: cfg.Content.Dir,
		log:        logger,
		lastUpdate: time.Now(),
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if err := ebiten.RunGame(driver); err != nil {
		logger.Fatal("game loop terminated", zap.Error(err))
	}
}
