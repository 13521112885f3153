package model

// Category is one of the five fixed notification classes used by the Hush backend
// for routing and display. The set is closed, anything else coming over the wire
// is rendered with the fallback icon and color.
type Category string

// All known categories, ordered by classification priority
const (
	CategorySafety   Category = "safety"
	CategorySecurity Category = "security"
	CategoryDevice   Category = "device"
	CategoryMotion   Category = "motion"
	CategoryInfo     Category = "info"
)

// CategoryBehavior is the routing policy applied to notifications of a category
type CategoryBehavior string

// All known behaviors
const (
	BehaviorAlwaysNotify    CategoryBehavior = "always_notify"
	BehaviorRespectQuiet    CategoryBehavior = "notify_respect_quiet"
	BehaviorOncePerHour     CategoryBehavior = "notify_once_per_hour"
	BehaviorLogOnly         CategoryBehavior = "log_only"
	BehaviorNotifyWithDedup CategoryBehavior = "notify_with_dedup"
)

// Fallback display values for category values the client does not know about
const (
	FallbackCategoryIcon  = "🔔"
	FallbackCategoryColor = "#666666"
)

var categories = []Category{
	CategorySafety,
	CategorySecurity,
	CategoryDevice,
	CategoryMotion,
	CategoryInfo,
}

var behaviors = []CategoryBehavior{
	BehaviorAlwaysNotify,
	BehaviorRespectQuiet,
	BehaviorOncePerHour,
	BehaviorLogOnly,
	BehaviorNotifyWithDedup,
}

// defaultCategoryBehaviors is the backend's default routing table, used when a
// category has no explicit override in HushConfig
var defaultCategoryBehaviors = map[Category]CategoryBehavior{
	CategorySafety:   BehaviorAlwaysNotify,
	CategorySecurity: BehaviorRespectQuiet,
	CategoryDevice:   BehaviorOncePerHour,
	CategoryMotion:   BehaviorLogOnly,
	CategoryInfo:     BehaviorNotifyWithDedup,
}

var categoryIcons = map[Category]string{
	CategorySafety:   "🚨",
	CategorySecurity: "🚪",
	CategoryDevice:   "📱",
	CategoryMotion:   "👤",
	CategoryInfo:     "ℹ️",
}

var categoryNames = map[Category]string{
	CategorySafety:   "Safety",
	CategorySecurity: "Security",
	CategoryDevice:   "Device",
	CategoryMotion:   "Motion",
	CategoryInfo:     "Other",
}

var categoryColors = map[Category]string{
	CategorySafety:   "#E74C3C",
	CategorySecurity: "#F39C12",
	CategoryDevice:   "#7AA2F7",
	CategoryMotion:   "#2EC4B6",
	CategoryInfo:     "#9399B2",
}

var behaviorNames = map[CategoryBehavior]string{
	BehaviorAlwaysNotify:    "Always notify",
	BehaviorRespectQuiet:    "Respect quiet hours",
	BehaviorOncePerHour:     "Once per hour",
	BehaviorLogOnly:         "Log only",
	BehaviorNotifyWithDedup: "Notify with dedup",
}

// Categories returns all known categories in classification priority order
func Categories() []Category {
	return categories
}

// Behaviors returns all known behaviors
func Behaviors() []CategoryBehavior {
	return behaviors
}

// Valid returns true if the category is a member of the closed set
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Icon returns the category glyph, falling back for unknown values
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return FallbackCategoryIcon
}

// DisplayName returns the category display name
// Unknown values are rendered as-is rather than failing.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Color returns the hex color used to render the category, falling back for
// unknown values
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return FallbackCategoryColor
}

// DefaultBehavior returns the backend's default routing policy for the category
func (c Category) DefaultBehavior() CategoryBehavior {
	if b, ok := defaultCategoryBehaviors[c]; ok {
		return b
	}
	return BehaviorNotifyWithDedup
}

// Valid returns true if the behavior is a member of the closed set
func (b CategoryBehavior) Valid() bool {
	_, ok := behaviorNames[b]
	return ok
}

// DisplayName returns the behavior display name
func (b CategoryBehavior) DisplayName() string {
	if name, ok := behaviorNames[b]; ok {
		return name
	}
	return string(b)
}
