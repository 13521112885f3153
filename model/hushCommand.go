package model

// Command types understood by the Hush backend's WebSocket API
const (
	TypeGetConfig          = "hush/get_config"
	TypeSaveConfig         = "hush/save_config"
	TypeGetEntityOverrides = "hush/get_entity_overrides"
	TypeSetEntityOverride  = "hush/set_entity_override"
	TypeGetNotifications   = "hush/get_notifications"
)

// Limits enforced by the backend's get_notifications schema
const (
	MinNotificationsLimit = 1
	MaxNotificationsLimit = 100
)

var (
	_ HassAPIObject = (*GetConfigCommand)(nil)
	_ HassAPIObject = (*SaveConfigCommand)(nil)
	_ HassAPIObject = (*GetEntityOverridesCommand)(nil)
	_ HassAPIObject = (*SetEntityOverrideCommand)(nil)
	_ HassAPIObject = (*GetNotificationsCommand)(nil)
)

// GetConfigCommand requests the backend configuration and the available
// notify services
type GetConfigCommand struct {
	ID   uint64 `json:"id"`
	Type string `json:"type"`
}

// NewGetConfigCommand godoc
func NewGetConfigCommand() GetConfigCommand {
	return GetConfigCommand{Type: TypeGetConfig}
}

// GetID godoc
func (c GetConfigCommand) GetID() uint64 {
	return c.ID
}

// GetType godoc
func (c GetConfigCommand) GetType() string {
	return c.Type
}

// Duplicate godoc
func (c GetConfigCommand) Duplicate(id uint64) HassAPIObject {
	dup := c
	dup.ID = id
	return dup
}

// SaveConfigCommand persists a full configuration, there is no partial save
type SaveConfigCommand struct {
	ID     uint64     `json:"id"`
	Type   string     `json:"type"`
	Config HushConfig `json:"config"`
}

// NewSaveConfigCommand godoc
func NewSaveConfigCommand(config HushConfig) SaveConfigCommand {
	return SaveConfigCommand{Type: TypeSaveConfig, Config: config}
}

// GetID godoc
func (c SaveConfigCommand) GetID() uint64 {
	return c.ID
}

// GetType godoc
func (c SaveConfigCommand) GetType() string {
	return c.Type
}

// Duplicate godoc
func (c SaveConfigCommand) Duplicate(id uint64) HassAPIObject {
	dup := c
	dup.ID = id
	return dup
}

// GetEntityOverridesCommand requests the tracked entities and the manual
// override map
type GetEntityOverridesCommand struct {
	ID   uint64 `json:"id"`
	Type string `json:"type"`
}

// NewGetEntityOverridesCommand godoc
func NewGetEntityOverridesCommand() GetEntityOverridesCommand {
	return GetEntityOverridesCommand{Type: TypeGetEntityOverrides}
}

// GetID godoc
func (c GetEntityOverridesCommand) GetID() uint64 {
	return c.ID
}

// GetType godoc
func (c GetEntityOverridesCommand) GetType() string {
	return c.Type
}

// Duplicate godoc
func (c GetEntityOverridesCommand) Duplicate(id uint64) HassAPIObject {
	dup := c
	dup.ID = id
	return dup
}

// SetEntityOverrideCommand assigns a manual category to an entity.
// A nil Category marshals to null and clears the override, reverting the
// entity to its automatic classification.
type SetEntityOverrideCommand struct {
	ID       uint64    `json:"id"`
	Type     string    `json:"type"`
	EntityID string    `json:"entity_id"`
	Category *Category `json:"category"`
}

// NewSetEntityOverrideCommand godoc
func NewSetEntityOverrideCommand(entityID string, category *Category) SetEntityOverrideCommand {
	return SetEntityOverrideCommand{
		Type:     TypeSetEntityOverride,
		EntityID: entityID,
		Category: category,
	}
}

// GetID godoc
func (c SetEntityOverrideCommand) GetID() uint64 {
	return c.ID
}

// GetType godoc
func (c SetEntityOverrideCommand) GetType() string {
	return c.Type
}

// Duplicate godoc
func (c SetEntityOverrideCommand) Duplicate(id uint64) HassAPIObject {
	dup := c
	dup.ID = id
	return dup
}

// GetNotificationsCommand requests recent notifications and today's stats
type GetNotificationsCommand struct {
	ID    uint64 `json:"id"`
	Type  string `json:"type"`
	Limit int    `json:"limit"`
}

// NewGetNotificationsCommand clamps limit to the range accepted by the backend
func NewGetNotificationsCommand(limit int) GetNotificationsCommand {
	if limit < MinNotificationsLimit {
		limit = MinNotificationsLimit
	}
	if limit > MaxNotificationsLimit {
		limit = MaxNotificationsLimit
	}
	return GetNotificationsCommand{Type: TypeGetNotifications, Limit: limit}
}

// GetID godoc
func (c GetNotificationsCommand) GetID() uint64 {
	return c.ID
}

// GetType godoc
func (c GetNotificationsCommand) GetType() string {
	return c.Type
}

// Duplicate godoc
func (c GetNotificationsCommand) Duplicate(id uint64) HassAPIObject {
	dup := c
	dup.ID = id
	return dup
}
