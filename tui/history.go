package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hush-ha/hushctl/hush"
	"github.com/hush-ha/hushctl/logging"
	"github.com/hush-ha/hushctl/model"
)

type historyModel struct {
	client *hush.Client
	width  int
	height int

	cfg CardConfig

	// fetched guards the initial request, it is issued once when the
	// connection becomes ready
	fetched bool
	loading bool
	loaded  bool
	loadErr string

	records []model.NotificationRecord
	stats   model.TodayStats

	editorActive bool
	editor       cardEditorModel

	chart barchart.Model
	spin  spinner.Model
}

func newHistoryModel(client *hush.Client, cfg CardConfig) historyModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return historyModel{
		client: client,
		cfg:    cfg.ApplyDefaults(),
		chart:  barchart.New(40, 8),
		spin:   sp,
	}
}

func (h *historyModel) setSize(w, height int) {
	h.width = w
	h.height = height
	h.buildChart()
}

// setConfig applies a new card configuration. Defaults are merged in here,
// once, not at render time.
func (h *historyModel) setConfig(cfg CardConfig) {
	h.cfg = cfg.ApplyDefaults()
}

func (h historyModel) fetch() tea.Cmd {
	client := h.client
	limit := h.cfg.Limit
	return func() tea.Msg {
		l := logging.NewLogger("historyModel.fetch")

		ctx, cancel := rpcContext()
		defer cancel()

		feed, err := client.GetNotifications(ctx, limit)
		if err != nil {
			l.Error().Err(err).Msg("Unable to fetch notifications")
			return notificationsErrMsg{err: err}
		}
		return notificationsMsg{feed: feed}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ConnReadyMsg:
		if h.fetched {
			return h, nil
		}
		h.fetched = true
		h.loading = true
		return h, tea.Batch(h.fetch(), h.spin.Tick)

	case RefreshMsg:
		if !h.fetched {
			return h, nil
		}
		h.loading = true
		return h, tea.Batch(h.fetch(), h.spin.Tick)

	case notificationsMsg:
		h.loading = false
		h.loaded = true
		h.loadErr = ""
		h.records = msg.feed.Notifications
		h.stats = msg.feed.Stats
		h.buildChart()
		return h, nil

	case notificationsErrMsg:
		h.loading = false
		h.loadErr = msg.err.Error()
		return h, nil

	case cardConfigChangedMsg:
		h.setConfig(msg.config)
		if !h.fetched {
			return h, nil
		}
		h.loading = true
		return h, tea.Batch(h.fetch(), h.spin.Tick)

	case spinner.TickMsg:
		if !h.loading {
			return h, nil
		}
		var cmd tea.Cmd
		h.spin, cmd = h.spin.Update(msg)
		return h, cmd

	case tea.KeyMsg:
		if h.editorActive {
			if key.Matches(msg, keys.Back) {
				h.editorActive = false
				return h, nil
			}
			var cmd tea.Cmd
			h.editor, cmd = h.editor.update(msg)
			return h, cmd
		}

		switch {
		case key.Matches(msg, keys.Edit):
			h.editorActive = true
			h.editor = newCardEditorModel(h.cfg)
			return h, nil
		case key.Matches(msg, keys.Refresh):
			if !h.fetched {
				return h, nil
			}
			h.loading = true
			return h, tea.Batch(h.fetch(), h.spin.Tick)
		}
	}

	// non key messages still reach the editor's inputs, cursor blink and such
	if h.editorActive {
		var cmd tea.Cmd
		h.editor, cmd = h.editor.update(msg)
		return h, cmd
	}

	return h, nil
}

func (h *historyModel) buildChart() {
	chartWidth := h.width - 10
	if chartWidth < 20 {
		chartWidth = 20
	}
	h.chart = barchart.New(chartWidth, 6)

	counts := countTodayByCategory(h.records, time.Now())
	var bars []barchart.BarData
	for _, cat := range model.Categories() {
		bars = append(bars, barchart.BarData{
			Label: cat.DisplayName(),
			Values: []barchart.BarValue{
				{Name: string(cat), Value: float64(counts[cat]), Style: categoryStyle(cat)},
			},
		})
	}
	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	if h.editorActive {
		return activePanelStyle.Width(w).Render(h.editor.view())
	}

	var rows []string
	rows = append(rows, titleStyle.Render(h.cfg.Title))
	rows = append(rows, "")

	switch {
	case h.loadErr != "" && !h.loaded:
		rows = append(rows, errorStyle.Render("Failed to load notifications: "+h.loadErr))
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("Press r to retry"))
	case h.loading && !h.loaded:
		rows = append(rows, h.spin.View()+" Loading notifications...")
	case !h.fetched:
		rows = append(rows, mutedStyle.Render("Waiting for connection..."))
	case len(h.records) == 0:
		rows = append(rows, mutedStyle.Render("No notifications yet"))
	default:
		now := time.Now()
		for _, r := range h.records {
			rows = append(rows, renderNotificationRow(r, now)...)
		}
	}

	if h.loadErr != "" && h.loaded {
		rows = append(rows, "")
		rows = append(rows, errorStyle.Render("Refresh failed: "+h.loadErr))
	}

	if h.loaded {
		rows = append(rows, "")
		rows = append(rows, titleStyle.Render("Today"))
		rows = append(rows, h.chart.View())
		rows = append(rows, "")
		rows = append(rows, renderStatsFooter(h.stats))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderNotificationRow renders one record as its display lines
func renderNotificationRow(r model.NotificationRecord, now time.Time) []string {
	headline := r.Message
	if r.Title != "" {
		headline = r.Title
	}

	line := fmt.Sprintf("%s %s",
		categoryStyle(r.Category).Render(r.Category.Icon()),
		normalItemStyle.Render(headline))

	if r.CollapsedCount > 1 {
		line += " " + badgeStyle.Render(fmt.Sprintf("×%d", r.CollapsedCount))
	}
	if !r.Delivered {
		line += " " + mutedStyle.Render("(not delivered)")
	}

	meta := formatRelativeTime(r.Timestamp, now)
	if r.EntityID != "" {
		meta += " · " + r.EntityID
	}

	lines := []string{line}
	if r.Title != "" {
		lines = append(lines, "   "+normalItemStyle.Render(r.Message))
	}
	lines = append(lines, "   "+mutedStyle.Render(meta))
	return lines
}

// renderStatsFooter renders today's aggregate counters: alert styling when
// any safety notification happened, all-clear otherwise.
func renderStatsFooter(stats model.TodayStats) string {
	var state string
	if stats.SafetyCount > 0 {
		state = errorStyle.Render(fmt.Sprintf("⚠ %d safety", stats.SafetyCount))
	} else {
		state = successStyle.Render("✓ all clear")
	}

	totals := mutedStyle.Render(fmt.Sprintf("%d total · %d delivered today",
		stats.Total, stats.DeliveredCount))

	return state + "  " + totals
}
