package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hush-ha/hushctl/hush"
)

// App is the root model, it owns the tab bar and routes messages to the
// settings and history views
type App struct {
	active   viewState
	settings settingsModel
	history  historyModel

	online bool

	status        string
	statusIsError bool

	help     help.Model
	showHelp bool

	width  int
	height int
}

// NewApp builds the root model. Data loading starts when a ConnReadyMsg
// arrives, which the caller sends once the websocket is authenticated.
func NewApp(client *hush.Client, svc ServiceCaller, card CardConfig) App {
	return App{
		active:   viewSettings,
		settings: newSettingsModel(client, svc),
		history:  newHistoryModel(client, card),
		help:     help.New(),
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.settings.setSize(msg.Width, msg.Height-4)
		a.history.setSize(msg.Width, msg.Height-4)
		return a, nil

	case ConnStatusMsg:
		a.online = msg.Online
		return a, nil

	case ConnReadyMsg:
		// both views react, settings loads the config and history fetches
		// its first page
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		cmds = append(cmds, cmd)
		a.history, cmd = a.history.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case RefreshMsg:
		var cmd tea.Cmd
		a.history, cmd = a.history.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.statusIsError = msg.isError
		return a, nil

	case tea.KeyMsg:
		a.status = ""
		return a.updateKey(msg)
	}

	return a.forward(msg)
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// while a form, filter or editor has focus, every other key belongs to it
	if a.inputCaptured() {
		return a.forwardToActive(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	case key.Matches(msg, keys.Tab1):
		a.active = viewSettings
		return a, nil
	case key.Matches(msg, keys.Tab2):
		a.active = viewHistory
		return a, nil
	case key.Matches(msg, keys.Tab):
		a.active = (a.active + 1) % viewState(len(viewNames))
		return a, nil
	}

	return a.forwardToActive(msg)
}

func (a App) inputCaptured() bool {
	switch a.active {
	case viewSettings:
		return a.settings.formActive || a.settings.advancedOpen
	case viewHistory:
		return a.history.editorActive
	}
	return false
}

func (a App) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	}
	return a, cmd
}

// forward routes asynchronous messages to both views, each one ignores
// message types it does not own
func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.settings, cmd = a.settings.update(msg)
	cmds = append(cmds, cmd)
	a.history, cmd = a.history.update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) View() string {
	if a.width == 0 {
		return "Starting hushctl..."
	}

	var content string
	switch a.active {
	case viewSettings:
		content = a.settings.view()
	case viewHistory:
		content = a.history.view()
	}

	sections := []string{a.viewHeader(), content}
	if a.status != "" {
		style := successStyle
		if a.statusIsError {
			style = errorStyle
		}
		sections = append(sections, style.Padding(0, 1).Render(a.status))
	}
	sections = append(sections, footerStyle.Render(a.help.View(keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) viewHeader() string {
	tabs := make([]string, 0, len(viewNames))
	for i, name := range viewNames {
		style := inactiveTabStyle
		if viewState(i) == a.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(name))
	}

	conn := errorStyle.Render("● offline")
	if a.online {
		conn = successStyle.Render("● online")
	}

	row := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	gap := a.width - lipgloss.Width(row) - lipgloss.Width(conn) - 2
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Render(row + lipgloss.PlaceHorizontal(gap, lipgloss.Right, "") + conn)
}
