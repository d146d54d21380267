// internal/component/selection.go
package component

// Selectable — флаг выбора сущности игроком.
type Selectable struct {
	Selected bool
}

// Interactable — область попадания для кликов и наведения.
type Interactable struct {
	Radius float64
}
