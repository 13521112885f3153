package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/hush-ha/hushctl/hush"
	"github.com/hush-ha/hushctl/logging"
	"github.com/hush-ha/hushctl/model"
)

// maxEntityRows caps the rendered override list regardless of how many
// entities match the filter
const maxEntityRows = 50

// ServiceCaller calls a Home Assistant service, used for test notifications
type ServiceCaller interface {
	CallService(domain string, service string, serviceData map[string]interface{}) error
}

type settingsModel struct {
	client *hush.Client
	svc    ServiceCaller
	width  int
	height int

	// configuration state, edits go to a local draft until saved whole
	loading  bool
	loaded   bool
	loadErr  string
	cfg      model.HushConfig
	services []model.NotifyService

	saving  bool
	saveErr string

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	target       *string
	quietEnabled *bool
	quietStart   *string
	quietEnd     *string
	behaviors    map[model.Category]*string

	// advanced entity override section, lazily loaded on first open
	advancedOpen  bool
	entLoading    bool
	entLoaded     bool
	entErr        string
	entities      []model.EntityInfo
	filter        textinput.Model
	filterFocused bool
	cursor        int
}

func newSettingsModel(client *hush.Client, svc ServiceCaller) settingsModel {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter entities"
	filter.CharLimit = 64

	return settingsModel{
		client:    client,
		svc:       svc,
		behaviors: make(map[model.Category]*string, len(model.Categories())),
		filter:    filter,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// --- Commands ---

func (s settingsModel) load() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		l := logging.NewLogger("settingsModel.load")

		ctx, cancel := rpcContext()
		defer cancel()

		bundle, err := client.GetConfig(ctx)
		if err != nil {
			l.Error().Err(err).Msg("Unable to load configuration")
			return configLoadErrMsg{err: err}
		}
		return configLoadedMsg{bundle: bundle}
	}
}

func (s settingsModel) save(cfg model.HushConfig) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		ctx, cancel := rpcContext()
		defer cancel()

		if err := client.SaveConfig(ctx, cfg); err != nil {
			return configSaveErrMsg{err: err}
		}
		return configSavedMsg{}
	}
}

func (s settingsModel) loadEntities() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		l := logging.NewLogger("settingsModel.loadEntities")

		ctx, cancel := rpcContext()
		defer cancel()

		overrides, err := client.GetEntityOverrides(ctx)
		if err != nil {
			l.Error().Err(err).Msg("Unable to load entity overrides")
			return overridesLoadErrMsg{err: err}
		}
		return overridesLoadedMsg{overrides: overrides}
	}
}

func (s settingsModel) setOverride(entityID string, category *model.Category) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		ctx, cancel := rpcContext()
		defer cancel()

		if err := client.SetEntityOverride(ctx, entityID, category); err != nil {
			return overrideSetErrMsg{err: err}
		}
		return overrideSetMsg{}
	}
}

func (s settingsModel) sendTestNotification() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		err := svc.CallService("hush", "notify", map[string]interface{}{
			"message": "Test notification from hushctl",
			"title":   "Hush",
		})
		if err != nil {
			return statusMsg{text: "Test notification failed: " + err.Error(), isError: true}
		}
		return statusMsg{text: "Test notification sent"}
	}
}

// --- Update ---

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ConnReadyMsg:
		if s.loaded || s.loading {
			return s, nil
		}
		s.loading = true
		return s, s.load()

	case configLoadedMsg:
		s.loading = false
		s.loaded = true
		s.loadErr = ""
		s.cfg = msg.bundle.Config
		if s.cfg.CategoryBehaviors == nil {
			s.cfg.CategoryBehaviors = map[model.Category]model.CategoryBehavior{}
		}
		s.services = msg.bundle.NotifyServices
		return s, nil

	case configLoadErrMsg:
		s.loading = false
		s.loadErr = msg.err.Error()
		return s, nil

	case configSavedMsg:
		s.saving = false
		s.saveErr = ""
		return s, func() tea.Msg { return statusMsg{text: "Configuration saved"} }

	case configSaveErrMsg:
		// draft is kept as-is, the user can retry saving
		s.saving = false
		s.saveErr = msg.err.Error()
		return s, nil

	case overridesLoadedMsg:
		s.entLoading = false
		s.entLoaded = true
		s.entErr = ""
		s.entities = msg.overrides.Entities
		s.clampCursor()
		return s, nil

	case overridesLoadErrMsg:
		s.entLoading = false
		s.entErr = msg.err.Error()
		return s, nil

	case overrideSetMsg:
		// reflect the server-computed classification by refetching the list
		s.entLoading = true
		return s, tea.Batch(
			s.loadEntities(),
			func() tea.Msg { return statusMsg{text: "Override updated"} },
		)

	case overrideSetErrMsg:
		// non blocking, local state unchanged
		s.entErr = msg.err.Error()
		return s, nil

	case tea.KeyMsg:
		if s.formActive && s.form != nil {
			return s.updateForm(msg)
		}
		if s.advancedOpen {
			return s.updateAdvanced(msg)
		}

		switch {
		case key.Matches(msg, keys.Refresh):
			if s.loaded {
				return s, nil
			}
			s.loading = true
			s.loadErr = ""
			return s, s.load()
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			// edits are blocked until a configuration is loaded
			if !s.loaded {
				return s, nil
			}
			return s.showForm()
		case key.Matches(msg, keys.Advanced):
			if !s.loaded {
				return s, nil
			}
			s.advancedOpen = true
			// lazy load, refetch only when the list is empty
			if !s.entLoaded || len(s.entities) == 0 {
				s.entLoading = true
				return s, s.loadEntities()
			}
			return s, nil
		case key.Matches(msg, keys.Test):
			return s, s.sendTestNotification()
		}
	}

	// non key messages still reach the focused field, cursor blink and such
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}
	if s.filterFocused {
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s settingsModel) updateAdvanced(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if s.filterFocused {
		if key.Matches(msg, keys.Back) || msg.String() == "enter" {
			s.filterFocused = false
			s.filter.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.clampCursor()
		return s, cmd
	}

	switch {
	case key.Matches(msg, keys.Back):
		s.advancedOpen = false
		return s, nil
	case key.Matches(msg, keys.Filter):
		s.filterFocused = true
		s.filter.Focus()
		return s, nil
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case key.Matches(msg, keys.Down):
		s.cursor++
		s.clampCursor()
		return s, nil
	case key.Matches(msg, keys.Clear):
		if entity, ok := s.selectedEntity(); ok {
			return s, s.setOverride(entity.EntityID, nil)
		}
		return s, nil
	}

	// number keys assign a category override directly
	if k := msg.String(); len(k) == 1 {
		if idx := strings.IndexByte("12345", k[0]); idx >= 0 {
			if entity, ok := s.selectedEntity(); ok {
				cat := model.Categories()[idx]
				return s, s.setOverride(entity.EntityID, &cat)
			}
		}
	}

	return s, nil
}

// --- Form ---

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// seed the form from the draft
	t := s.cfg.DeliveryTarget
	qe := s.cfg.QuietHoursEnabled
	qs := s.cfg.QuietHoursStart
	qn := s.cfg.QuietHoursEnd
	s.target = &t
	s.quietEnabled = &qe
	s.quietStart = &qs
	s.quietEnd = &qn
	for _, cat := range model.Categories() {
		b := string(s.cfg.EffectiveBehavior(cat))
		s.behaviors[cat] = &b
	}

	targetOptions := make([]huh.Option[string], 0, len(s.services)+1)
	found := false
	for _, svc := range s.services {
		if svc.Service == s.cfg.DeliveryTarget {
			found = true
		}
		targetOptions = append(targetOptions, huh.NewOption(svc.Name, svc.Service))
	}
	if !found && s.cfg.DeliveryTarget != "" {
		targetOptions = append(targetOptions, huh.NewOption(s.cfg.DeliveryTarget, s.cfg.DeliveryTarget))
	}

	behaviorOptions := make([]huh.Option[string], 0, len(model.Behaviors()))
	for _, b := range model.Behaviors() {
		behaviorOptions = append(behaviorOptions, huh.NewOption(b.DisplayName(), string(b)))
	}

	behaviorFields := make([]huh.Field, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		behaviorFields = append(behaviorFields,
			huh.NewSelect[string]().
				Title(fmt.Sprintf("%s %s", cat.Icon(), cat.DisplayName())).
				Options(behaviorOptions...).
				Value(s.behaviors[cat]))
	}

	quietEnabled := s.quietEnabled
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Delivery target").
				Options(targetOptions...).
				Value(s.target),
			huh.NewConfirm().Title("Quiet hours").
				Affirmative("Enabled").Negative("Disabled").
				Value(s.quietEnabled),
		).Title("Delivery"),
		// time inputs only exist while quiet hours are enabled
		huh.NewGroup(
			huh.NewInput().Title("Quiet hours start (HH:MM)").Value(s.quietStart),
			huh.NewInput().Title("Quiet hours end (HH:MM)").Value(s.quietEnd),
		).Title("Quiet hours").WithHideFunc(func() bool { return !*quietEnabled }),
		huh.NewGroup(behaviorFields...).Title("Category behaviors"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.applyFormToDraft()
		s.saving = true
		return s, s.save(s.cfg)
	}

	return s, cmd
}

func (s *settingsModel) applyFormToDraft() {
	s.cfg.DeliveryTarget = *s.target
	s.cfg.QuietHoursEnabled = *s.quietEnabled
	s.cfg.QuietHoursStart = *s.quietStart
	s.cfg.QuietHoursEnd = *s.quietEnd
	for _, cat := range model.Categories() {
		s.cfg.SetBehavior(cat, model.CategoryBehavior(*s.behaviors[cat]))
	}
}

// quietFieldsVisible tells whether the quiet-hours time inputs are shown.
// It depends only on the draft flag, no save round trip involved.
func quietFieldsVisible(cfg model.HushConfig) bool {
	return cfg.QuietHoursEnabled
}

// --- Entity list helpers ---

// filterEntities returns entities matching the query, case-insensitive
// substring over name and id, overridden entities first
func filterEntities(entities []model.EntityInfo, query string) []model.EntityInfo {
	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]model.EntityInfo, 0, len(entities))
	for _, e := range entities {
		if query == "" ||
			strings.Contains(strings.ToLower(e.Name), query) ||
			strings.Contains(strings.ToLower(e.EntityID), query) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].HasOverride != matched[j].HasOverride {
			return matched[i].HasOverride
		}
		ni, nj := strings.ToLower(matched[i].Name), strings.ToLower(matched[j].Name)
		if ni != nj {
			return ni < nj
		}
		return matched[i].EntityID < matched[j].EntityID
	})

	return matched
}

// visibleEntities caps the filtered list at maxEntityRows and reports whether
// rows were cut off
func visibleEntities(entities []model.EntityInfo, query string) ([]model.EntityInfo, bool) {
	matched := filterEntities(entities, query)
	if len(matched) > maxEntityRows {
		return matched[:maxEntityRows], true
	}
	return matched, false
}

func (s *settingsModel) clampCursor() {
	rows, _ := visibleEntities(s.entities, s.filter.Value())
	if s.cursor > len(rows)-1 {
		s.cursor = len(rows) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s settingsModel) selectedEntity() (model.EntityInfo, bool) {
	rows, _ := visibleEntities(s.entities, s.filter.Value())
	if len(rows) == 0 || s.cursor >= len(rows) {
		return model.EntityInfo{}, false
	}
	return rows[s.cursor], true
}

// --- View ---

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Hush Settings")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	if s.advancedOpen {
		return s.viewAdvanced(w)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Hush Settings"))
	rows = append(rows, "")

	switch {
	case s.loadErr != "" && !s.loaded:
		// no usable data, the error blocks edits until a retry succeeds
		rows = append(rows, errorStyle.Render("Failed to load configuration: "+s.loadErr))
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("Press r to retry"))
	case s.loading && !s.loaded:
		rows = append(rows, mutedStyle.Render("Loading configuration..."))
	case !s.loaded:
		rows = append(rows, mutedStyle.Render("Waiting for connection..."))
	default:
		rows = append(rows, s.viewSummary()...)
	}

	if s.saveErr != "" {
		rows = append(rows, "")
		rows = append(rows, errorStyle.Render("Save failed: "+s.saveErr))
		rows = append(rows, mutedStyle.Render("Your changes are kept, press e to review and save again"))
	}
	if s.saving {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("Saving..."))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) viewSummary() []string {
	var rows []string

	target := s.cfg.DeliveryTarget
	if target == "" {
		target = "not set"
	}
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(18).Render("Delivery target"),
		highlightStyle.Render(target)))

	quiet := "disabled"
	if s.cfg.QuietHoursEnabled {
		quiet = fmt.Sprintf("%s – %s", s.cfg.QuietHoursStart, s.cfg.QuietHoursEnd)
	}
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(18).Render("Quiet hours"),
		highlightStyle.Render(quiet)))

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("Category behaviors"))
	for _, cat := range model.Categories() {
		behavior := s.cfg.EffectiveBehavior(cat)
		suffix := ""
		if _, ok := s.cfg.CategoryBehaviors[cat]; !ok {
			suffix = mutedStyle.Render(" (default)")
		}
		rows = append(rows, fmt.Sprintf("  %s %s %s%s",
			categoryStyle(cat).Render(cat.Icon()),
			lipgloss.NewStyle().Width(10).Render(cat.DisplayName()),
			normalItemStyle.Render(behavior.DisplayName()),
			suffix))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("e: edit  a: entity overrides  t: test notification"))
	return rows
}

func (s settingsModel) viewAdvanced(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Entity Overrides"))
	rows = append(rows, "")
	rows = append(rows, s.filter.View())
	rows = append(rows, "")

	switch {
	case s.entLoading && !s.entLoaded:
		rows = append(rows, mutedStyle.Render("Loading entities..."))
	case s.entErr != "" && !s.entLoaded:
		rows = append(rows, errorStyle.Render("Failed to load entities: "+s.entErr))
	default:
		visible, truncated := visibleEntities(s.entities, s.filter.Value())
		if len(visible) == 0 {
			rows = append(rows, mutedStyle.Render("No entities"))
		}
		for i, e := range visible {
			rows = append(rows, s.renderEntityRow(e, i == s.cursor))
		}
		if truncated {
			rows = append(rows, "")
			rows = append(rows, mutedStyle.Render(
				fmt.Sprintf("Showing first %d matches, narrow the filter to see more", maxEntityRows)))
		}
	}

	if s.entErr != "" && s.entLoaded {
		rows = append(rows, "")
		rows = append(rows, errorStyle.Render(s.entErr))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("1-5: set category  x: clear override  /: filter  esc: back"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) renderEntityRow(e model.EntityInfo, selected bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}

	marker := " "
	if e.HasOverride {
		marker = "✎"
	}

	name := e.Name
	if name == "" {
		name = e.EntityID
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		cursor,
		categoryStyle(e.Category).Render(e.Category.Icon()),
		style.Render(name),
		mutedStyle.Render(e.EntityID),
		warningStyle.Render(marker),
		mutedStyle.Render(string(e.Source)))
}
