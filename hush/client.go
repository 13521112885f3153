// Package hush is the typed client for the Hush integration's WebSocket API.
// Every request goes through the generic CallWS primitive, result payloads are
// decoded into model types.
package hush

import (
	"context"
	"time"

	"github.com/hush-ha/hushctl/logging"
	"github.com/hush-ha/hushctl/model"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Caller is the generic call primitive the client talks through
type Caller interface {
	CallWS(ctx context.Context, cmd model.HassAPIObject) (*model.HassResult, error)
}

// Client wraps a Caller with the typed hush/* commands
type Client struct {
	caller Caller
}

// NewClient returns a new Client using the given Caller
func NewClient(caller Caller) *Client {
	return &Client{caller: caller}
}

// ConfigBundle is the hush/get_config response
type ConfigBundle struct {
	Config model.HushConfig `mapstructure:"config"`
	// NotifyServices are the delivery targets available on the server,
	// sorted by name
	NotifyServices []model.NotifyService `mapstructure:"notify_services"`
}

// EntityOverrides is the hush/get_entity_overrides response
type EntityOverrides struct {
	Overrides map[string]model.Category `mapstructure:"overrides"`
	Entities  []model.EntityInfo        `mapstructure:"entities"`
}

// NotificationFeed is the hush/get_notifications response
type NotificationFeed struct {
	Notifications []model.NotificationRecord `mapstructure:"notifications"`
	Stats         model.TodayStats           `mapstructure:"stats"`
}

// GetConfig fetches the backend configuration and the available notify services
func (c *Client) GetConfig(ctx context.Context) (*ConfigBundle, error) {
	result, err := c.caller.CallWS(ctx, model.NewGetConfigCommand())
	if err != nil {
		return nil, errors.Wrap(err, "getting config")
	}

	bundle := &ConfigBundle{}
	if err := decodeResult(result, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// SaveConfig persists the full configuration
func (c *Client) SaveConfig(ctx context.Context, cfg model.HushConfig) error {
	l := logging.NewLogger("Client.SaveConfig")

	if _, err := c.caller.CallWS(ctx, model.NewSaveConfigCommand(cfg)); err != nil {
		return errors.Wrap(err, "saving config")
	}

	l.Info().
		Str("delivery_target", cfg.DeliveryTarget).
		Bool("quiet_hours_enabled", cfg.QuietHoursEnabled).
		Msg("Configuration saved")
	return nil
}

// GetEntityOverrides fetches the tracked entities along with the manual
// override map
func (c *Client) GetEntityOverrides(ctx context.Context) (*EntityOverrides, error) {
	result, err := c.caller.CallWS(ctx, model.NewGetEntityOverridesCommand())
	if err != nil {
		return nil, errors.Wrap(err, "getting entity overrides")
	}

	overrides := &EntityOverrides{}
	if err := decodeResult(result, overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// SetEntityOverride assigns a manual category to an entity, nil clears the
// override so the entity reverts to its automatic classification
func (c *Client) SetEntityOverride(ctx context.Context, entityID string, category *model.Category) error {
	if _, err := c.caller.CallWS(ctx, model.NewSetEntityOverrideCommand(entityID, category)); err != nil {
		return errors.Wrapf(err, "setting override for %s", entityID)
	}
	return nil
}

// GetNotifications fetches the most recent notifications and today's stats
func (c *Client) GetNotifications(ctx context.Context, limit int) (*NotificationFeed, error) {
	result, err := c.caller.CallWS(ctx, model.NewGetNotificationsCommand(limit))
	if err != nil {
		return nil, errors.Wrap(err, "getting notifications")
	}

	feed := &NotificationFeed{}
	if err := decodeResult(result, feed); err != nil {
		return nil, err
	}
	return feed, nil
}

// decodeResult decodes a result frame's payload into out.
// Timestamps come over the wire as RFC3339 strings.
func decodeResult(result *model.HassResult, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:     out,
	})
	if err != nil {
		return errors.Wrap(err, "creating result decoder")
	}

	if err := decoder.Decode(result.Result); err != nil {
		return errors.Wrapf(err, "decoding %s result", result.GetType())
	}
	return nil
}
