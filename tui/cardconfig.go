package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Defaults for the history card configuration
const (
	DefaultCardTitle = "Recent Notifications"
	DefaultCardLimit = 10
)

// CardConfig configures the history card. Defaults are applied once when the
// configuration is set, never re-derived later.
type CardConfig struct {
	Title string
	Limit int
}

// DefaultCardConfig godoc
func DefaultCardConfig() CardConfig {
	return CardConfig{}.ApplyDefaults()
}

// ApplyDefaults fills unset fields. The merge is idempotent, applying it
// twice yields the same configuration as once.
func (c CardConfig) ApplyDefaults() CardConfig {
	if c.Title == "" {
		c.Title = DefaultCardTitle
	}
	if c.Limit <= 0 {
		c.Limit = DefaultCardLimit
	}
	return c
}

// parseLimit parses a user supplied limit, falling back to the default when
// unparsable or non-positive
func parseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return DefaultCardLimit
	}
	return n
}

// cardEditorModel is the companion editor for the history card: two fields,
// emitting the merged configuration whenever either changes.
type cardEditorModel struct {
	title textinput.Model
	limit textinput.Model
	focus int
}

func newCardEditorModel(cfg CardConfig) cardEditorModel {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = DefaultCardTitle
	title.SetValue(cfg.Title)
	title.CharLimit = 80
	title.Focus()

	limit := textinput.New()
	limit.Prompt = ""
	limit.Placeholder = strconv.Itoa(DefaultCardLimit)
	limit.SetValue(strconv.Itoa(cfg.Limit))
	limit.CharLimit = 3

	return cardEditorModel{
		title: title,
		limit: limit,
	}
}

// config merges the current field values into a configuration object
func (e cardEditorModel) config() CardConfig {
	return CardConfig{
		Title: e.title.Value(),
		Limit: parseLimit(e.limit.Value()),
	}
}

func (e cardEditorModel) update(msg tea.Msg) (cardEditorModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down", "up":
			e.focus = (e.focus + 1) % 2
			if e.focus == 0 {
				e.title.Focus()
				e.limit.Blur()
			} else {
				e.title.Blur()
				e.limit.Focus()
			}
			return e, nil
		}
	}

	before := e.config()

	var cmds []tea.Cmd
	var cmd tea.Cmd
	e.title, cmd = e.title.Update(msg)
	cmds = append(cmds, cmd)
	e.limit, cmd = e.limit.Update(msg)
	cmds = append(cmds, cmd)

	// emit the merged configuration on every effective change
	if after := e.config(); after != before {
		cmds = append(cmds, func() tea.Msg {
			return cardConfigChangedMsg{config: after}
		})
	}

	return e, tea.Batch(cmds...)
}

func (e cardEditorModel) view() string {
	rows := []string{
		titleStyle.Render("Card configuration"),
		"",
		"  Title  " + e.title.View(),
		"  Limit  " + e.limit.View(),
		"",
		mutedStyle.Render("  tab: switch field  esc: close"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
