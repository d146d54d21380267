// pkg/geom/angle.go
package geom

import "math"

// NormalizeAngle нормализует угол в диапазон [-π, π].
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// AngleDiff возвращает абсолютную кратчайшую разницу между углами,
// корректно пересекая границу -π/π. Результат в диапазоне [0, π].
func AngleDiff(a, b float64) float64 {
	d := NormalizeAngle(b - a)
	return math.Abs(d)
}

// LerpAngle интерполирует между углами по кратчайшей дуге.
func LerpAngle(from, to, t float64) float64 {
	from = NormalizeAngle(from)
	to = NormalizeAngle(to)

	diff := to - from
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}

	return NormalizeAngle(from + diff*t)
}

// SegmentDist возвращает расстояние от точки p до отрезка ab.
// Используется при проверке легальности установки башни рядом с дорогой.
func SegmentDist(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return Dist(p, a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return Dist(p, closest)
}
