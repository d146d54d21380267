// internal/component/render.go
package component

import "image/color"

// Renderable — компонент для отрисовки. Системы только выставляют поля,
// рисует их внешний адаптер рендера.
type Renderable struct {
	Color     color.RGBA
	Radius    float32
	HasStroke bool
	Visible   bool

	// Полоска здоровья над сущностью.
	ShowHealthBar bool
	HealthFrac    float32 // 0..1
}
