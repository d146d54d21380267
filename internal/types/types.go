// internal/types/types.go
package types

// EntityID — уникальный идентификатор сущности.
// Монотонно растёт, никогда не переиспользуется в рамках процесса.
type EntityID uint64

// NoEntity обозначает отсутствующую ссылку на сущность.
const NoEntity EntityID = 0
