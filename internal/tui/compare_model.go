package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/history"
	"github.com/rshade/ecotrip/internal/modes"
)

// CompareState represents the current state of the compare TUI.
type CompareState int

const (
	// CompareStateEditing shows the trip form.
	CompareStateEditing CompareState = iota
	// CompareStateResult shows the evaluated comparison.
	CompareStateResult
	// CompareStateQuitting indicates the application is exiting.
	CompareStateQuitting
)

// Form fields, in tab order.
const (
	fieldDistance = iota
	fieldFrom
	fieldTo
	fieldPurpose
	fieldCount
)

const (
	inputCharLimit = 64
	inputWidth     = 32
)

// SaveFunc persists a comparison and returns the updated recent list.
type SaveFunc func(ctx context.Context, cmp engine.Comparison, from, to string) ([]history.Record, error)

// ToggleThemeFunc flips the stored theme and returns the new one.
type ToggleThemeFunc func() (config.Theme, error)

// saveCompleteMsg is sent when a SaveFunc returns.
type saveCompleteMsg struct {
	records []history.Record
	err     error
}

// CompareModel is the Bubble Tea model for the interactive trip form.
type CompareModel struct {
	ctx context.Context

	inputs     []textinput.Model
	focus      int
	purposeIdx int

	state      CompareState
	inputErr   error
	saveErr    error
	themeErr   error
	comparison *engine.Comparison
	recent     []history.Record

	theme    config.Theme
	opts     ViewOptions
	renderer *Renderer

	width  int
	height int

	saveFn   SaveFunc
	toggleFn ToggleThemeFunc
}

// CompareModelOptions configure NewCompareModel.
type CompareModelOptions struct {
	Theme       config.Theme
	View        ViewOptions
	Purpose     modes.Purpose
	Distance    string
	From        string
	To          string
	Recent      []history.Record
	Save        SaveFunc
	ToggleTheme ToggleThemeFunc
}

// NewCompareModel creates the form, pre-filled from opts.
func NewCompareModel(ctx context.Context, opts CompareModelOptions) *CompareModel {
	m := &CompareModel{
		ctx:      ctx,
		inputs:   make([]textinput.Model, fieldPurpose),
		state:    CompareStateEditing,
		recent:   opts.Recent,
		theme:    opts.Theme,
		opts:     opts.View,
		renderer: NewRenderer(opts.Theme, opts.View),
		width:    defaultWidth,
		height:   defaultHeight,
		saveFn:   opts.Save,
		toggleFn: opts.ToggleTheme,
	}

	m.inputs[fieldDistance] = newFormInput("Distance in km, e.g. 12.5", opts.Distance)
	m.inputs[fieldFrom] = newFormInput(engine.DefaultFromLabel, opts.From)
	m.inputs[fieldTo] = newFormInput(engine.DefaultToLabel, opts.To)
	m.inputs[fieldDistance].Focus()

	for i, p := range modes.Purposes() {
		if p == opts.Purpose {
			m.purposeIdx = i
		}
	}
	return m
}

func newFormInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = inputCharLimit
	ti.Width = inputWidth
	ti.SetValue(value)
	return ti
}

// Init starts the cursor blinking.
func (m *CompareModel) Init() tea.Cmd {
	return textinput.Blink
}

// Purpose returns the selected purpose.
func (m *CompareModel) Purpose() modes.Purpose {
	return modes.Purposes()[m.purposeIdx]
}

// Comparison returns the last evaluated comparison, if any.
func (m *CompareModel) Comparison() *engine.Comparison {
	return m.comparison
}

// Recent returns the recent-trip list as last reported by the save callback.
func (m *CompareModel) Recent() []history.Record {
	return m.recent
}

// Update handles messages and updates the model state.
func (m *CompareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case saveCompleteMsg:
		m.saveErr = msg.err
		if msg.err == nil {
			m.recent = msg.records
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m.updateFocusedInput(msg)
}

// handleKeyMsg processes keyboard input.
//
//nolint:exhaustive // Only handling relevant key types for form navigation.
func (m *CompareModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.state = CompareStateQuitting
		return m, tea.Quit

	case tea.KeyCtrlT:
		m.toggleTheme()
		return m, nil
	}

	if m.state == CompareStateResult {
		return m.handleResultKey(msg)
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case tea.KeyEnter:
		return m.submit()
	}

	if m.focus == fieldPurpose {
		return m.handlePurposeKey(msg)
	}
	return m.updateFocusedInput(msg)
}

// handlePurposeKey cycles the purpose selector.
//
//nolint:exhaustive // Only left/right/space cycle the selector.
func (m *CompareModel) handlePurposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(modes.Purposes())
	switch msg.Type {
	case tea.KeyRight, tea.KeySpace:
		m.purposeIdx = (m.purposeIdx + 1) % n
	case tea.KeyLeft:
		m.purposeIdx = (m.purposeIdx + n - 1) % n
	}
	return m, nil
}

// handleResultKey processes keys on the result screen.
//
//nolint:exhaustive // Only handling relevant key types for the result screen.
func (m *CompareModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.state = CompareStateEditing
		m.setFocus(fieldDistance)
		return m, textinput.Blink

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = CompareStateQuitting
			return m, tea.Quit
		case "n":
			m.state = CompareStateEditing
			m.setFocus(fieldDistance)
			return m, textinput.Blink
		}
	}
	return m, nil
}

// submit validates the form, evaluates the trip and starts the save.
func (m *CompareModel) submit() (tea.Model, tea.Cmd) {
	distance, err := engine.ParseDistance(m.inputs[fieldDistance].Value())
	if err != nil {
		m.inputErr = err
		m.setFocus(fieldDistance)
		return m, nil
	}
	m.inputErr = nil
	m.saveErr = nil

	cmp := engine.Compare(distance, m.Purpose())
	m.comparison = &cmp
	m.state = CompareStateResult

	if m.saveFn == nil {
		return m, nil
	}

	ctx := m.ctx
	saveFn := m.saveFn
	from := m.inputs[fieldFrom].Value()
	to := m.inputs[fieldTo].Value()
	return m, func() tea.Msg {
		records, saveErr := saveFn(ctx, cmp, from, to)
		return saveCompleteMsg{records: records, err: saveErr}
	}
}

func (m *CompareModel) toggleTheme() {
	if m.toggleFn == nil {
		return
	}
	theme, err := m.toggleFn()
	m.themeErr = err
	if err != nil {
		return
	}
	m.theme = theme
	m.renderer = NewRenderer(theme, m.opts)
}

func (m *CompareModel) setFocus(field int) {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *CompareModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state != CompareStateEditing || m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View renders the current view.
func (m *CompareModel) View() string {
	switch m.state {
	case CompareStateQuitting:
		return ""
	case CompareStateResult:
		return m.renderResultView()
	case CompareStateEditing:
		return m.renderFormView()
	default:
		return ""
	}
}

func (m *CompareModel) renderFormView() string {
	s := m.renderer.Styles()
	var sections []string

	sections = append(sections, s.Header.Render("🌍 ECOTRIP · compare travel modes"))

	labels := []string{"Distance (km)", "From", "To"}
	var form []string
	for i, in := range m.inputs {
		label := s.Label.Render(fmt.Sprintf("%-14s", labels[i]))
		if m.focus == i {
			label = s.Selected.Render(fmt.Sprintf("%-14s", labels[i]))
		}
		form = append(form, label+" "+in.View())
	}
	form = append(form, m.renderPurposeSelector())
	sections = append(sections, s.Box.Render(strings.Join(form, "\n")))

	if m.inputErr != nil {
		sections = append(sections, s.Critical.Render("✗ "+m.inputErr.Error()))
	}
	if m.themeErr != nil {
		sections = append(sections, s.Warning.Render("theme not saved: "+m.themeErr.Error()))
	}

	sections = append(sections, m.renderer.RenderHistory(m.recent))
	sections = append(sections, s.Help.Render(
		"tab/↓ next field · ←/→ change purpose · enter compare · ctrl+t theme · esc quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *CompareModel) renderPurposeSelector() string {
	s := m.renderer.Styles()
	label := s.Label.Render(fmt.Sprintf("%-14s", "Purpose"))
	if m.focus == fieldPurpose {
		label = s.Selected.Render(fmt.Sprintf("%-14s", "Purpose"))
	}

	opts := make([]string, 0, len(modes.Purposes()))
	for i, p := range modes.Purposes() {
		if i == m.purposeIdx {
			opts = append(opts, s.Highlight.Render("["+p.Label()+"]"))
		} else {
			opts = append(opts, s.Subtle.Render(p.Label()))
		}
	}
	return label + " " + strings.Join(opts, "  ")
}

func (m *CompareModel) renderResultView() string {
	s := m.renderer.Styles()
	var sections []string

	if m.comparison != nil {
		sections = append(sections, m.renderer.RenderComparison(*m.comparison,
			m.inputs[fieldFrom].Value(), m.inputs[fieldTo].Value()))
	}
	if m.saveErr != nil {
		sections = append(sections, s.Warning.Render("trip not saved to history: "+m.saveErr.Error()))
	}
	if m.themeErr != nil {
		sections = append(sections, s.Warning.Render("theme not saved: "+m.themeErr.Error()))
	}
	sections = append(sections, s.Help.Render("enter/n new trip · ctrl+t theme · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
