package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/hush-ha/hushctl/hush"
	"github.com/hush-ha/hushctl/model"
)

// viewState represents the currently active view.
type viewState int

const (
	viewSettings viewState = iota
	viewHistory
)

var viewNames = []string{"Settings", "History"}

// rpcTimeout bounds every WebSocket call issued from the TUI. A hung call
// fails the affected section instead of pending forever.
const rpcTimeout = 15 * time.Second

func rpcContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), rpcTimeout)
}

// --- Messages sent from outside the program ---

// ConnReadyMsg is sent when the WebSocket auth handshake completes
type ConnReadyMsg struct{}

// ConnStatusMsg carries the host reachability state
type ConnStatusMsg struct {
	Online bool
}

// RefreshMsg asks the history view to refetch
type RefreshMsg struct{}

// --- Internal messages ---

type configLoadedMsg struct {
	bundle *hush.ConfigBundle
}

type configLoadErrMsg struct {
	err error
}

type configSavedMsg struct{}

type configSaveErrMsg struct {
	err error
}

type overridesLoadedMsg struct {
	overrides *hush.EntityOverrides
}

type overridesLoadErrMsg struct {
	err error
}

type overrideSetMsg struct{}

type overrideSetErrMsg struct {
	err error
}

type notificationsMsg struct {
	feed *hush.NotificationFeed
}

type notificationsErrMsg struct {
	err error
}

type cardConfigChangedMsg struct {
	config CardConfig
}

type statusMsg struct {
	text    string
	isError bool
}

// --- Helpers ---

// formatRelativeTime renders a timestamp relative to now. It is a pure
// function of both arguments.
func formatRelativeTime(t time.Time, now time.Time) string {
	elapsed := now.Sub(t)

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// dateIsToday returns true if the given date happens today according to now's
// location
func dateIsToday(t time.Time, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day()
}

// countTodayByCategory tallies today's records per category, keyed in
// model.Categories() order with unknown categories folded into info
func countTodayByCategory(records []model.NotificationRecord, now time.Time) map[model.Category]int {
	counts := make(map[model.Category]int, len(model.Categories()))
	for _, r := range records {
		if !dateIsToday(r.Timestamp, now) {
			continue
		}
		cat := r.Category
		if !cat.Valid() {
			cat = model.CategoryInfo
		}
		counts[cat]++
	}
	return counts
}
