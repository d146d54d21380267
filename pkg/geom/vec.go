// pkg/geom/vec.go
package geom

import "math"

// Vec2 — точка или вектор на плоскости.
type Vec2 struct {
	X, Y float64
}

// Add возвращает сумму векторов.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub возвращает разность векторов.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale умножает вектор на скаляр.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len возвращает длину вектора.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Dist возвращает евклидово расстояние между точками.
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// DistSq — квадрат расстояния, когда сам корень не нужен.
func DistSq(a, b Vec2) float64 {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

// Angle возвращает угол вектора от a к b в диапазоне [-π, π].
func Angle(a, b Vec2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Lerp выполняет стандартную линейную интерполяцию.
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
