// internal/component/transform.go
package component

// Transform — позиция, поворот и масштаб сущности.
type Transform struct {
	X, Y     float64
	Rotation float64 // радианы, [-π, π]
	Scale    float64
}
