package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/hush-ha/hushctl/model"
)

func TestConnReadyFetchesOnce(t *testing.T) {
	h := newHistoryModel(nil, DefaultCardConfig())

	h, cmd := h.update(ConnReadyMsg{})
	if cmd == nil {
		t.Fatal("first connection-ready should trigger a fetch")
	}
	if !h.fetched {
		t.Fatal("fetched guard should be set after the first connection-ready")
	}

	// a reconnect must not issue another initial fetch
	h, cmd = h.update(ConnReadyMsg{})
	if cmd != nil {
		t.Error("second connection-ready should not trigger another fetch")
	}
	_ = h
}

func TestRenderNotificationRow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	record := model.NotificationRecord{
		Message:        "Front door opened",
		Category:       model.CategorySecurity,
		EntityID:       "binary_sensor.front_door",
		Timestamp:      now.Add(-5 * time.Minute),
		Delivered:      true,
		CollapsedCount: 1,
	}

	lines := strings.Join(renderNotificationRow(record, now), "\n")
	if !strings.Contains(lines, "Front door opened") {
		t.Error("row should contain the message")
	}
	if !strings.Contains(lines, model.CategorySecurity.Icon()) {
		t.Error("row should contain the category icon")
	}
	if !strings.Contains(lines, "5m ago") {
		t.Error("row should contain the relative time")
	}
	if !strings.Contains(lines, "binary_sensor.front_door") {
		t.Error("row should contain the entity id")
	}
	if strings.Contains(lines, "×") {
		t.Error("single notification should not carry a collapse badge")
	}
	if strings.Contains(lines, "not delivered") {
		t.Error("delivered notification should not carry the suppressed marker")
	}
}

func TestRenderNotificationRowCollapsedAndSuppressed(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	record := model.NotificationRecord{
		Message:        "Motion detected",
		Category:       model.CategoryMotion,
		Timestamp:      now.Add(-time.Hour),
		Delivered:      false,
		CollapsedCount: 4,
	}

	lines := strings.Join(renderNotificationRow(record, now), "\n")
	if !strings.Contains(lines, "×4") {
		t.Error("collapsed notifications should show the repeat count")
	}
	if !strings.Contains(lines, "(not delivered)") {
		t.Error("suppressed notification should be marked")
	}
}

func TestRenderNotificationRowUnknownCategory(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	record := model.NotificationRecord{
		Message:   "Odd payload",
		Category:  model.Category("weird"),
		Timestamp: now,
		Delivered: true,
	}

	lines := strings.Join(renderNotificationRow(record, now), "\n")
	if !strings.Contains(lines, model.FallbackCategoryIcon) {
		t.Error("unknown category should render the fallback icon")
	}
}

func TestRenderStatsFooter(t *testing.T) {
	alert := renderStatsFooter(model.TodayStats{Total: 12, SafetyCount: 2, DeliveredCount: 9})
	if !strings.Contains(alert, "2 safety") {
		t.Errorf("expected safety alert in footer, got %q", alert)
	}
	if !strings.Contains(alert, "12 total") || !strings.Contains(alert, "9 delivered") {
		t.Errorf("expected totals in footer, got %q", alert)
	}

	allClear := renderStatsFooter(model.TodayStats{Total: 3, DeliveredCount: 3})
	if !strings.Contains(allClear, "all clear") {
		t.Errorf("expected all-clear state in footer, got %q", allClear)
	}
}

func TestCardConfigChangeRefetches(t *testing.T) {
	h := newHistoryModel(nil, DefaultCardConfig())
	h.fetched = true

	h, cmd := h.update(cardConfigChangedMsg{config: CardConfig{Title: "Alerts", Limit: 0}})
	if cmd == nil {
		t.Error("config change should refetch once connected")
	}
	if h.cfg.Title != "Alerts" {
		t.Errorf("title not applied: %q", h.cfg.Title)
	}
	if h.cfg.Limit != DefaultCardLimit {
		t.Errorf("zero limit should merge to the default, got %d", h.cfg.Limit)
	}
}
