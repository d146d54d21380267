// internal/entity/system.go
package entity

import "hoshi-td/internal/component"

// System — логика, которая раз в кадр обходит сущности с нужным
// набором компонентов. Системы не держат ссылок на сущности между
// кадрами: единственный источник — запрос к миру.
type System interface {
	// Name — идентичность системы для поиска и замены.
	Name() string
	// Priority задаёт порядок обновления: меньше — раньше.
	// Равные приоритеты сохраняют порядок регистрации.
	Priority() int
	// Required — набор компонентов, с которыми работает система.
	Required() component.Kind

	Enabled() bool
	SetEnabled(enabled bool)

	// Init вызывается один раз при регистрации.
	Init(w *World)
	Update(w *World, dt float64)
	// Destroy вызывается один раз при снятии системы и обязана
	// освободить внешние ресурсы, созданные системой.
	Destroy(w *World)
}

// Base — общая обвязка систем: имя, приоритет, флаг включения.
// Встраивается в конкретные системы.
type Base struct {
	name     string
	priority int
	enabled  bool
}

// NewBase создаёт включённую обвязку системы.
func NewBase(name string, priority int) Base {
	return Base{name: name, priority: priority, enabled: true}
}

func (b *Base) Name() string      { return b.name }
func (b *Base) Priority() int     { return b.priority }
func (b *Base) Enabled() bool     { return b.enabled }
func (b *Base) SetEnabled(v bool) { b.enabled = v }

func (b *Base) Init(*World)    {}
func (b *Base) Destroy(*World) {}
