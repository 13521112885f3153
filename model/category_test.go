package model

import "testing"

func TestCategoryTablesAreTotal(t *testing.T) {
	for _, cat := range Categories() {
		if !cat.Valid() {
			t.Errorf("category %s should be valid", cat)
		}
		if cat.Icon() == FallbackCategoryIcon {
			t.Errorf("category %s has no icon", cat)
		}
		// display names are capitalized, the raw value leaking through
		// means a missing table entry
		if cat.DisplayName() == string(cat) {
			t.Errorf("category %s has no display name", cat)
		}
		if cat.Color() == FallbackCategoryColor {
			t.Errorf("category %s has no color", cat)
		}
		if !cat.DefaultBehavior().Valid() {
			t.Errorf("category %s has an invalid default behavior", cat)
		}
	}

	for _, b := range Behaviors() {
		if !b.Valid() {
			t.Errorf("behavior %s should be valid", b)
		}
		if b.DisplayName() == string(b) {
			t.Errorf("behavior %s has no display name", b)
		}
	}
}

func TestUnknownCategoryFallsBack(t *testing.T) {
	cat := Category("laundry")

	if cat.Valid() {
		t.Error("unknown category should not be valid")
	}
	if cat.Icon() != FallbackCategoryIcon {
		t.Errorf("unknown category icon: got %q", cat.Icon())
	}
	if cat.Color() != FallbackCategoryColor {
		t.Errorf("unknown category color: got %q", cat.Color())
	}
	if cat.DisplayName() != "laundry" {
		t.Errorf("unknown category should display its raw value, got %q", cat.DisplayName())
	}
}

func TestDefaultBehaviors(t *testing.T) {
	tests := []struct {
		cat      Category
		expected CategoryBehavior
	}{
		{CategorySafety, BehaviorAlwaysNotify},
		{CategorySecurity, BehaviorRespectQuiet},
		{CategoryDevice, BehaviorOncePerHour},
		{CategoryMotion, BehaviorLogOnly},
		{CategoryInfo, BehaviorNotifyWithDedup},
	}

	for _, tt := range tests {
		if got := tt.cat.DefaultBehavior(); got != tt.expected {
			t.Errorf("%s default behavior: got %s, expected %s", tt.cat, got, tt.expected)
		}
	}
}

func TestEffectiveBehavior(t *testing.T) {
	cfg := NewHushConfig()

	// no override, the default routing table applies
	if got := cfg.EffectiveBehavior(CategoryMotion); got != BehaviorLogOnly {
		t.Errorf("default motion behavior: got %s", got)
	}

	cfg.SetBehavior(CategoryMotion, BehaviorAlwaysNotify)
	if got := cfg.EffectiveBehavior(CategoryMotion); got != BehaviorAlwaysNotify {
		t.Errorf("overridden motion behavior: got %s", got)
	}

	// other categories are untouched by the override
	if got := cfg.EffectiveBehavior(CategorySafety); got != BehaviorAlwaysNotify {
		t.Errorf("safety behavior: got %s", got)
	}

	// an invalid override coming from a stale or newer server is ignored
	cfg.SetBehavior(CategoryDevice, CategoryBehavior("shout_loudly"))
	if got := cfg.EffectiveBehavior(CategoryDevice); got != BehaviorOncePerHour {
		t.Errorf("invalid override should fall back to default, got %s", got)
	}
}

func TestSetBehaviorOnZeroConfig(t *testing.T) {
	var cfg HushConfig
	cfg.SetBehavior(CategoryInfo, BehaviorLogOnly)
	if got := cfg.EffectiveBehavior(CategoryInfo); got != BehaviorLogOnly {
		t.Errorf("behavior on zero config: got %s", got)
	}
}
