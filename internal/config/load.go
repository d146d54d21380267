// internal/config/load.go
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config — настройки рантайма, читаются из TOML.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Game    GameConfig    `toml:"game"`
	Content ContentConfig `toml:"content"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type GameConfig struct {
	Seed int64 `toml:"seed"` // 0 — сид от времени
}

type ContentConfig struct {
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"` // горячая перезагрузка описаний
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" или "console"
}

// Default возвращает конфигурацию со вшитыми значениями.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  ScreenWidth,
			Height: ScreenHeight,
			Title:  "hoshi-td",
		},
		Content: ContentConfig{
			Dir: "content",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load читает конфигурацию из файла поверх значений по умолчанию.
// Отсутствующий файл — не ошибка: работаем на дефолтах.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
