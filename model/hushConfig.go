package model

// Default quiet hours as shipped by the backend
const (
	DefaultQuietHoursEnabled = true
	DefaultQuietHoursStart   = "22:00"
	DefaultQuietHoursEnd     = "07:00"
)

// HushConfig is the backend configuration as exchanged over hush/get_config and
// hush/save_config. It is fetched whole, edited field by field in a local draft
// and persisted whole, there is no partial save.
type HushConfig struct {
	// DeliveryTarget is the notify service notifications are forwarded to,
	// e.g. "notify.mobile_app_pixel"
	DeliveryTarget string `json:"delivery_target" mapstructure:"delivery_target"`
	// QuietHoursEnabled toggles the quiet hours window
	QuietHoursEnabled bool `json:"quiet_hours_enabled" mapstructure:"quiet_hours_enabled"`
	// QuietHoursStart is a local time of day, HH:MM
	QuietHoursStart string `json:"quiet_hours_start" mapstructure:"quiet_hours_start"`
	// QuietHoursEnd is a local time of day, HH:MM
	QuietHoursEnd string `json:"quiet_hours_end" mapstructure:"quiet_hours_end"`
	// CategoryBehaviors holds explicit per-category overrides, unset entries
	// fall back to the category's default behavior
	CategoryBehaviors map[Category]CategoryBehavior `json:"category_behaviors" mapstructure:"category_behaviors"`
}

// NewHushConfig returns a config holding the backend defaults
func NewHushConfig() HushConfig {
	return HushConfig{
		QuietHoursEnabled: DefaultQuietHoursEnabled,
		QuietHoursStart:   DefaultQuietHoursStart,
		QuietHoursEnd:     DefaultQuietHoursEnd,
		CategoryBehaviors: map[Category]CategoryBehavior{},
	}
}

// EffectiveBehavior resolves the routing policy for a category: the explicit
// override when set, the default table otherwise. Every category maps to
// exactly one effective behavior.
func (c HushConfig) EffectiveBehavior(cat Category) CategoryBehavior {
	if b, ok := c.CategoryBehaviors[cat]; ok && b.Valid() {
		return b
	}
	return cat.DefaultBehavior()
}

// SetBehavior records an explicit per-category override in the config
func (c *HushConfig) SetBehavior(cat Category, b CategoryBehavior) {
	if c.CategoryBehaviors == nil {
		c.CategoryBehaviors = map[Category]CategoryBehavior{}
	}
	c.CategoryBehaviors[cat] = b
}

// NotifyService is a delivery target available on the server
type NotifyService struct {
	// Service is the full service id, e.g. "notify.mobile_app_pixel"
	Service string `json:"service" mapstructure:"service"`
	// Name is the human readable service name
	Name string `json:"name" mapstructure:"name"`
}
