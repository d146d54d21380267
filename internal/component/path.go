// internal/component/path.go
package component

import (
	"hoshi-td/internal/types"
	"hoshi-td/pkg/geom"
)

// Path — упорядоченный список контрольных точек маршрута.
type Path struct {
	Waypoints []geom.Vec2
	Width     float64 // ширина коридора, для проверки установки башен
}

// PathFollower — движение сущности по маршруту.
type PathFollower struct {
	PathID        types.EntityID // сущность с компонентом Path
	WaypointIndex int
	Speed         float64
}
