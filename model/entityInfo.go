package model

// ClassificationSource tells how the backend resolved an entity's category
type ClassificationSource string

// All classification sources, from most to least specific
const (
	SourceDeviceClass ClassificationSource = "device_class"
	SourceDomain      ClassificationSource = "domain"
	SourcePattern     ClassificationSource = "pattern"
	SourceDefault     ClassificationSource = "default"
)

// EntityInfo describes one tracked entity and its resolved classification as
// returned by hush/get_entity_overrides. When HasOverride is set, Category
// reflects the manual override rather than the auto-classification.
type EntityInfo struct {
	EntityID    string               `json:"entity_id" mapstructure:"entity_id"`
	Name        string               `json:"name" mapstructure:"name"`
	Category    Category             `json:"category" mapstructure:"category"`
	Source      ClassificationSource `json:"source" mapstructure:"source"`
	HasOverride bool                 `json:"has_override" mapstructure:"has_override"`
	DeviceClass string               `json:"device_class" mapstructure:"device_class"`
}
