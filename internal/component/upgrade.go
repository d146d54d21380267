// internal/component/upgrade.go
package component

// Upgrades — применённые улучшения башни, по ID из upgrades.yaml.
type Upgrades struct {
	Applied []string
}

// HasApplied сообщает, применено ли улучшение.
func (u *Upgrades) HasApplied(id string) bool {
	for _, a := range u.Applied {
		if a == id {
			return true
		}
	}
	return false
}
