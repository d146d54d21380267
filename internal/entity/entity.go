// internal/entity/entity.go
package entity

import "hoshi-td/internal/types"

// Entity — идентичность плюс набор компонентов. Поведения не несёт,
// вся логика живёт в системах. Сами данные компонентов лежат
// в покомпонентных картах мира.
type Entity struct {
	ID     types.EntityID
	Name   string
	Active bool

	applied bool // видна ли сущность запросам (после applyPending)
}

// Applied сообщает, прошла ли сущность отложенное добавление.
func (e *Entity) Applied() bool {
	return e.applied
}
