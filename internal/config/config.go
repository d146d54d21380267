// internal/config/config.go
package config

import "image/color"

// Константы ядра, не настраиваемые из файла.
const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06

	// Порог засчитывания попадания снаряда и достижения
	// контрольной точки пути, в единицах мира.
	HitThreshold = 5.0

	EnemyRadius = 10.0
	TowerRadius = 14.0

	ProjectileRadius = 5.0 // pixels

	// Доля стоимости, возвращаемая при продаже башни.
	SellRefundFactor = 0.7

	// Задержка перед возвратом в выбор сцены из терминальных состояний.
	ResultScreenDelay = 3.0
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	PathColor        = color.RGBA{70, 100, 120, 220}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	EnemyColor       = color.RGBA{220, 60, 60, 255}
	TowerStrokeColor = color.RGBA{255, 255, 255, 255}
	PreviewOkColor   = color.RGBA{50, 205, 50, 160}
	PreviewBadColor  = color.RGBA{205, 50, 50, 160}
	HealthBarColor   = color.RGBA{50, 205, 50, 255}

	HealthBarBackColor = color.RGBA{40, 40, 40, 255}
	ConeColor          = color.RGBA{255, 140, 0, 200}
	SelectionColor     = color.RGBA{255, 215, 0, 255}
	RangeColor         = color.RGBA{200, 200, 200, 90}
)

// SpeedMultipliers — доступные множители скорости игры.
var SpeedMultipliers = []float64{1.0, 2.0, 4.0}
