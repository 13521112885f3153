package tui

import (
	"fmt"
	"testing"

	"github.com/hush-ha/hushctl/model"
)

func TestFilterEntitiesMatchesNameAndID(t *testing.T) {
	entities := []model.EntityInfo{
		{EntityID: "binary_sensor.front_door", Name: "Front Door", Category: model.CategorySecurity},
		{EntityID: "sensor.battery_phone", Name: "Phone Battery", Category: model.CategoryDevice},
		{EntityID: "binary_sensor.smoke_kitchen", Name: "Kitchen Smoke", Category: model.CategorySafety},
	}

	tests := []struct {
		query    string
		expected []string
	}{
		{"door", []string{"binary_sensor.front_door"}},
		{"DOOR", []string{"binary_sensor.front_door"}},
		{"binary_sensor", []string{"binary_sensor.front_door", "binary_sensor.smoke_kitchen"}},
		{"nothing matches this", nil},
		{"", []string{"binary_sensor.front_door", "binary_sensor.smoke_kitchen", "sensor.battery_phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := filterEntities(entities, tt.query)
			if len(got) != len(tt.expected) {
				t.Fatalf("filterEntities(%q): got %d entities, expected %d", tt.query, len(got), len(tt.expected))
			}
			ids := make(map[string]bool, len(got))
			for _, e := range got {
				ids[e.EntityID] = true
			}
			for _, id := range tt.expected {
				if !ids[id] {
					t.Errorf("filterEntities(%q): missing %s", tt.query, id)
				}
			}
		})
	}
}

func TestFilterEntitiesOverriddenFirst(t *testing.T) {
	entities := []model.EntityInfo{
		{EntityID: "sensor.aaa", Name: "AAA"},
		{EntityID: "sensor.zzz", Name: "ZZZ", HasOverride: true},
		{EntityID: "sensor.mmm", Name: "MMM"},
	}

	got := filterEntities(entities, "")
	if got[0].EntityID != "sensor.zzz" {
		t.Errorf("expected overridden entity first, got %s", got[0].EntityID)
	}
	if got[1].EntityID != "sensor.aaa" || got[2].EntityID != "sensor.mmm" {
		t.Errorf("expected remaining entities sorted by name, got %s then %s",
			got[1].EntityID, got[2].EntityID)
	}
}

func TestVisibleEntitiesCapped(t *testing.T) {
	entities := make([]model.EntityInfo, 0, maxEntityRows+20)
	for i := 0; i < maxEntityRows+20; i++ {
		entities = append(entities, model.EntityInfo{
			EntityID: fmt.Sprintf("sensor.entity_%03d", i),
			Name:     fmt.Sprintf("Entity %03d", i),
		})
	}

	visible, truncated := visibleEntities(entities, "")
	if len(visible) != maxEntityRows {
		t.Errorf("got %d visible entities, expected %d", len(visible), maxEntityRows)
	}
	if !truncated {
		t.Error("expected truncation to be reported")
	}

	visible, truncated = visibleEntities(entities, "entity_001")
	if len(visible) != 1 {
		t.Errorf("filtered: got %d entities, expected 1", len(visible))
	}
	if truncated {
		t.Error("filtered list fits, truncation must not be reported")
	}
}

func TestQuietFieldsVisible(t *testing.T) {
	cfg := model.NewHushConfig()
	if !quietFieldsVisible(cfg) {
		t.Error("quiet fields should be visible with the default configuration")
	}

	cfg.QuietHoursEnabled = false
	if quietFieldsVisible(cfg) {
		t.Error("quiet fields should be hidden when quiet hours are disabled")
	}
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	s := newSettingsModel(nil, nil)
	s.loaded = true
	s.cfg = model.NewHushConfig()
	s.cfg.DeliveryTarget = "notify.mobile_app_phone"
	s.cfg.SetBehavior(model.CategoryMotion, model.BehaviorLogOnly)
	s.saving = true

	s, _ = s.update(configSaveErrMsg{err: fmt.Errorf("storage write failed")})

	if s.saving {
		t.Error("saving flag should be cleared after a failure")
	}
	if s.saveErr == "" {
		t.Error("save error should be surfaced")
	}
	if s.cfg.DeliveryTarget != "notify.mobile_app_phone" {
		t.Errorf("draft delivery target lost: %s", s.cfg.DeliveryTarget)
	}
	if s.cfg.EffectiveBehavior(model.CategoryMotion) != model.BehaviorLogOnly {
		t.Error("draft behavior edit lost after failed save")
	}
}

func TestOverrideErrorIsNonBlocking(t *testing.T) {
	s := newSettingsModel(nil, nil)
	s.entLoaded = true
	s.entities = []model.EntityInfo{
		{EntityID: "sensor.one", Name: "One", Category: model.CategoryDevice},
	}

	s, _ = s.update(overrideSetErrMsg{err: fmt.Errorf("entity not found")})

	if s.entErr == "" {
		t.Error("override error should be surfaced")
	}
	if len(s.entities) != 1 {
		t.Error("entity list should be unchanged after a failed override")
	}
}
