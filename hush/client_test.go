package hush

import (
	"context"
	"testing"
	"time"

	"github.com/hush-ha/hushctl/model"
)

// fakeCaller is a backend double answering commands from a handler func
type fakeCaller struct {
	handler func(cmd model.HassAPIObject) (*model.HassResult, error)
	calls   []model.HassAPIObject
}

func (f *fakeCaller) CallWS(_ context.Context, cmd model.HassAPIObject) (*model.HassResult, error) {
	f.calls = append(f.calls, cmd)
	return f.handler(cmd)
}

func successResult(payload interface{}) *model.HassResult {
	return &model.HassResult{
		Type:    "result",
		Success: true,
		Result:  payload,
	}
}

func TestGetConfigDecodesPayload(t *testing.T) {
	caller := &fakeCaller{
		handler: func(cmd model.HassAPIObject) (*model.HassResult, error) {
			return successResult(map[string]interface{}{
				"config": map[string]interface{}{
					"delivery_target":     "notify.mobile_app_pixel",
					"quiet_hours_enabled": true,
					"quiet_hours_start":   "22:00",
					"quiet_hours_end":     "07:00",
					"category_behaviors": map[string]interface{}{
						"motion": "always_notify",
					},
				},
				"notify_services": []interface{}{
					map[string]interface{}{"service": "notify.mobile_app_pixel", "name": "Mobile App Pixel"},
					map[string]interface{}{"service": "notify.telegram", "name": "Telegram"},
				},
			}), nil
		},
	}

	client := NewClient(caller)
	bundle, err := client.GetConfig(context.Background())
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}

	if bundle.Config.DeliveryTarget != "notify.mobile_app_pixel" {
		t.Errorf("DeliveryTarget = %q", bundle.Config.DeliveryTarget)
	}
	if !bundle.Config.QuietHoursEnabled {
		t.Error("QuietHoursEnabled should be true")
	}
	if got := bundle.Config.EffectiveBehavior(model.CategoryMotion); got != model.BehaviorAlwaysNotify {
		t.Errorf("EffectiveBehavior(motion) = %v, want explicit override", got)
	}
	if got := bundle.Config.EffectiveBehavior(model.CategorySafety); got != model.BehaviorAlwaysNotify {
		t.Errorf("EffectiveBehavior(safety) = %v, want default", got)
	}
	if len(bundle.NotifyServices) != 2 || bundle.NotifyServices[0].Name != "Mobile App Pixel" {
		t.Errorf("NotifyServices = %+v", bundle.NotifyServices)
	}
}

func TestSaveThenGetConfigRoundTrips(t *testing.T) {
	// stateful double: save_config stores, get_config returns what was stored
	var stored model.HushConfig
	caller := &fakeCaller{}
	caller.handler = func(cmd model.HassAPIObject) (*model.HassResult, error) {
		switch c := cmd.(type) {
		case model.SaveConfigCommand:
			stored = c.Config
			return successResult(nil), nil
		case model.GetConfigCommand:
			return successResult(map[string]interface{}{
				"config":          stored,
				"notify_services": []interface{}{},
			}), nil
		}
		t.Fatalf("unexpected command %T", cmd)
		return nil, nil
	}

	client := NewClient(caller)

	cfg := model.NewHushConfig()
	cfg.DeliveryTarget = "notify.telegram"
	cfg.QuietHoursEnabled = false
	cfg.QuietHoursStart = "23:30"
	cfg.QuietHoursEnd = "06:15"
	cfg.SetBehavior(model.CategoryDevice, model.BehaviorLogOnly)
	cfg.SetBehavior(model.CategoryInfo, model.BehaviorOncePerHour)

	if err := client.SaveConfig(context.Background(), cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	bundle, err := client.GetConfig(context.Background())
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}

	got := bundle.Config
	if got.DeliveryTarget != cfg.DeliveryTarget ||
		got.QuietHoursEnabled != cfg.QuietHoursEnabled ||
		got.QuietHoursStart != cfg.QuietHoursStart ||
		got.QuietHoursEnd != cfg.QuietHoursEnd {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, cfg)
	}
	for cat, want := range cfg.CategoryBehaviors {
		if got.CategoryBehaviors[cat] != want {
			t.Errorf("behavior %s = %v, want %v", cat, got.CategoryBehaviors[cat], want)
		}
	}
}

func TestGetNotificationsDecodesTimestamps(t *testing.T) {
	caller := &fakeCaller{
		handler: func(cmd model.HassAPIObject) (*model.HassResult, error) {
			return successResult(map[string]interface{}{
				"notifications": []interface{}{
					map[string]interface{}{
						"id":              "abc-123",
						"timestamp":       "2026-08-30T21:15:00+00:00",
						"message":         "Front door opened",
						"title":           "Security",
						"category":        "security",
						"entity_id":       "binary_sensor.front_door",
						"delivered":       true,
						"collapsed_count": 3,
					},
					map[string]interface{}{
						"id":              "def-456",
						"timestamp":       "2026-08-30T21:20:00.123456+00:00",
						"message":         "Smoke detected",
						"category":        "safety",
						"delivered":       false,
						"collapsed_count": 1,
					},
				},
				"stats": map[string]interface{}{
					"total":           12,
					"safety_count":    1,
					"delivered_count": 9,
				},
			}), nil
		},
	}

	client := NewClient(caller)
	feed, err := client.GetNotifications(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}

	if len(feed.Notifications) != 2 {
		t.Fatalf("got %d notifications, want 2", len(feed.Notifications))
	}

	first := feed.Notifications[0]
	want := time.Date(2026, 8, 30, 21, 15, 0, 0, time.UTC)
	if !first.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", first.Timestamp, want)
	}
	if first.Category != model.CategorySecurity || first.CollapsedCount != 3 {
		t.Errorf("record = %+v", first)
	}

	second := feed.Notifications[1]
	if second.Delivered {
		t.Error("second record should not be delivered")
	}
	if second.Timestamp.Nanosecond() == 0 {
		t.Error("fractional seconds should be preserved")
	}

	if feed.Stats.Total != 12 || feed.Stats.SafetyCount != 1 || feed.Stats.DeliveredCount != 9 {
		t.Errorf("stats = %+v", feed.Stats)
	}
}

func TestGetNotificationsClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "below_min", limit: 0, want: 1},
		{name: "in_range", limit: 10, want: 10},
		{name: "above_max", limit: 500, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := &fakeCaller{
				handler: func(cmd model.HassAPIObject) (*model.HassResult, error) {
					return successResult(map[string]interface{}{
						"notifications": []interface{}{},
						"stats":         map[string]interface{}{},
					}), nil
				},
			}
			client := NewClient(caller)
			if _, err := client.GetNotifications(context.Background(), tt.limit); err != nil {
				t.Fatalf("GetNotifications() error = %v", err)
			}
			cmd := caller.calls[0].(model.GetNotificationsCommand)
			if cmd.Limit != tt.want {
				t.Errorf("Limit = %d, want %d", cmd.Limit, tt.want)
			}
		})
	}
}

func TestSetEntityOverrideThenClearReverts(t *testing.T) {
	// The double mimics the backend: an override pins the category, clearing
	// it reverts to the automatic classification on the next fetch.
	entity := map[string]interface{}{
		"entity_id":    "binary_sensor.garage_motion",
		"name":         "Garage Motion",
		"category":     "motion",
		"source":       "device_class",
		"has_override": false,
		"device_class": "motion",
	}
	overrides := map[string]interface{}{}

	caller := &fakeCaller{}
	caller.handler = func(cmd model.HassAPIObject) (*model.HassResult, error) {
		switch c := cmd.(type) {
		case model.SetEntityOverrideCommand:
			if c.Category == nil {
				delete(overrides, c.EntityID)
				entity["category"] = "motion"
				entity["source"] = "device_class"
				entity["has_override"] = false
			} else {
				overrides[c.EntityID] = string(*c.Category)
				entity["category"] = string(*c.Category)
				entity["has_override"] = true
			}
			return successResult(nil), nil
		case model.GetEntityOverridesCommand:
			return successResult(map[string]interface{}{
				"overrides": overrides,
				"entities":  []interface{}{entity},
			}), nil
		}
		t.Fatalf("unexpected command %T", cmd)
		return nil, nil
	}

	client := NewClient(caller)
	ctx := context.Background()

	security := model.CategorySecurity
	if err := client.SetEntityOverride(ctx, "binary_sensor.garage_motion", &security); err != nil {
		t.Fatalf("SetEntityOverride() error = %v", err)
	}

	got, err := client.GetEntityOverrides(ctx)
	if err != nil {
		t.Fatalf("GetEntityOverrides() error = %v", err)
	}
	if !got.Entities[0].HasOverride || got.Entities[0].Category != model.CategorySecurity {
		t.Errorf("after override: %+v", got.Entities[0])
	}
	if got.Overrides["binary_sensor.garage_motion"] != model.CategorySecurity {
		t.Errorf("overrides map = %+v", got.Overrides)
	}

	if err := client.SetEntityOverride(ctx, "binary_sensor.garage_motion", nil); err != nil {
		t.Fatalf("SetEntityOverride(nil) error = %v", err)
	}

	got, err = client.GetEntityOverrides(ctx)
	if err != nil {
		t.Fatalf("GetEntityOverrides() error = %v", err)
	}
	if got.Entities[0].HasOverride {
		t.Error("override should be cleared")
	}
	if got.Entities[0].Source != model.SourceDeviceClass || got.Entities[0].Category != model.CategoryMotion {
		t.Errorf("entity should revert to automatic classification, got %+v", got.Entities[0])
	}
}

func TestCommandFailurePropagates(t *testing.T) {
	caller := &fakeCaller{
		handler: func(cmd model.HassAPIObject) (*model.HassResult, error) {
			return nil, context.DeadlineExceeded
		},
	}

	client := NewClient(caller)
	if _, err := client.GetConfig(context.Background()); err == nil {
		t.Fatal("GetConfig() should fail when the caller fails")
	}
	if err := client.SaveConfig(context.Background(), model.NewHushConfig()); err == nil {
		t.Fatal("SaveConfig() should fail when the caller fails")
	}
}
