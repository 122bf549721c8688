package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/debounce"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

const statusTimeout = 2 * time.Second

type tuiTab int

const (
	tabSingle tuiTab = iota
	tabBatch
	tabHistory
	tabCode
)

var tabOrder = []tuiTab{tabSingle, tabBatch, tabHistory, tabCode}

func (t tuiTab) String() string {
	switch t {
	case tabBatch:
		return "Batch"
	case tabHistory:
		return "History"
	case tabCode:
		return "Code"
	}
	return "Single"
}

// appTab maps to the persisted tab. History is a view of its own and is
// not persisted.
func (t tuiTab) appTab() (app.Tab, bool) {
	switch t {
	case tabSingle:
		return app.TabSingle, true
	case tabBatch:
		return app.TabBatch, true
	case tabCode:
		return app.TabCode, true
	}
	return "", false
}

func fromAppTab(t app.Tab) tuiTab {
	switch t {
	case app.TabBatch:
		return tabBatch
	case app.TabCode:
		return tabCode
	}
	return tabSingle
}

type convertMode int

const (
	modeToDate convertMode = iota
	modeFromDate
)

func (c convertMode) String() string {
	if c == modeFromDate {
		return "date → timestamp"
	}
	return "timestamp → date"
}

// message types

type debounceTickMsg struct {
	input string
	mode  convertMode
}

type clearStatusMsg struct {
	seq int
}

// sender lets the debounce timer post into the running program. p is set
// after tea.NewProgram returns.
type sender struct {
	p *tea.Program
}

func (s *sender) send(msg tea.Msg) {
	if s != nil && s.p != nil {
		s.p.Send(msg)
	}
}

type Options struct {
	// Debounce is the quiet interval before live conversion. Zero converts
	// on every keystroke.
	Debounce time.Duration
	Log      zerolog.Logger
}

// model

type model struct {
	store  *app.Store
	log    zerolog.Logger
	deb    *debounce.Debouncer
	out    *sender
	copyFn func(string) error

	tab   tuiTab
	mode  convertMode
	input textinput.Model
	batch textarea.Model
	view  viewport.Model
	st    styles

	convErr    error
	cursor     int
	listOffset int
	presetIdx  int
	status     string
	statusSeq  int

	width    int
	height   int
	ready    bool
	quitting bool
}

func newModel(store *app.Store, opts Options) model {
	state := store.State()

	ti := textinput.New()
	ti.Placeholder = "Unix timestamp..."
	ti.SetValue(state.CurrentInput)
	ti.Prompt = "> "
	ti.CharLimit = 64

	ta := textarea.New()
	ta.Placeholder = "One timestamp per line, or separated by , or ;"
	ta.ShowLineNumbers = false
	inputs := make([]string, 0, len(state.BatchItems))
	for _, it := range state.BatchItems {
		inputs = append(inputs, it.Input)
	}
	ta.SetValue(strings.Join(inputs, "\n"))

	m := model{
		store:  store,
		log:    opts.Log,
		out:    &sender{},
		copyFn: clipboard.WriteAll,
		tab:    fromAppTab(state.ActiveTab),
		input:  ti,
		batch:  ta,
		view:   viewport.New(0, 0),
	}
	if opts.Debounce > 0 {
		m.deb = debounce.New(opts.Debounce)
	}
	m.applyTheme()
	m.focus()
	m.refresh()
	return m
}

// Run starts the TUI and blocks until it exits.
func Run(store *app.Store, opts Options) error {
	m := newModel(store, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.out.p = p

	_, err := p.Run()
	if m.deb != nil {
		m.deb.Cancel()
	}
	store.SetLoading(false)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.NextTab):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, keys.PrevTab):
			m.switchTab(-1)
			return m, nil

		case key.Matches(msg, keys.Unit):
			unit := m.store.State().CurrentUnit.Next()
			_ = m.store.SetUnit(unit)
			if m.tab == tabSingle && strings.TrimSpace(m.input.Value()) != "" {
				m.convert()
			}
			m.refresh()
			cmd := m.setStatus("unit: " + string(unit))
			return m, cmd

		case key.Matches(msg, keys.Dark):
			m.store.ToggleDarkMode()
			m.applyTheme()
			m.refresh()
			return m, nil

		case key.Matches(msg, keys.Relative):
			m.store.SetShowRelativeTime(!m.store.State().ShowRelativeTime)
			m.refresh()
			return m, nil
		}

		switch m.tab {
		case tabSingle:
			return m.updateSingle(msg)
		case tabBatch:
			return m.updateBatch(msg)
		case tabHistory:
			return m.updateHistory(msg)
		case tabCode:
			m.scroll(msg)
			return m, nil
		}

	case debounceTickMsg:
		// only convert if the input hasn't changed since the tick was scheduled
		if msg.input == m.input.Value() && msg.mode == m.mode {
			m.convert()
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m model) updateSingle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Mode):
		if m.mode == modeToDate {
			m.mode = modeFromDate
			m.input.Placeholder = "Date, e.g. 2024-01-01 12:00:00..."
		} else {
			m.mode = modeToDate
			m.input.Placeholder = "Unix timestamp..."
		}
		m.convert()
		cmd := m.setStatus("mode: " + m.mode.String())
		return m, cmd

	case key.Matches(msg, keys.Copy):
		cmd := m.copyISO()
		return m, cmd

	case key.Matches(msg, keys.Now):
		m.mode = modeToDate
		m.input.SetValue(timestamp.FormatNumber(m.store.CurrentTimestamp()))
		m.input.CursorEnd()
		m.convert()
		return m, nil

	case key.Matches(msg, keys.Preset):
		presets := timestamp.Presets(m.store.State().CurrentUnit, time.Now())
		p := presets[m.presetIdx%len(presets)]
		m.presetIdx++
		m.mode = modeToDate
		m.input.SetValue(timestamp.FormatNumber(p.Value))
		m.input.CursorEnd()
		m.convert()
		cmd := m.setStatus("preset: " + p.Label)
		return m, cmd

	case key.Matches(msg, keys.PageUp), key.Matches(msg, keys.PageDown):
		m.scroll(msg)
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.schedule()
	}
	return m, cmd
}

func (m model) updateBatch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.RunBatch):
		cmd := m.runBatch()
		return m, cmd

	case key.Matches(msg, keys.ClearBatch):
		m.store.ClearBatch()
		m.batch.Reset()
		m.refresh()
		return m, nil

	case key.Matches(msg, keys.PageUp), key.Matches(msg, keys.PageDown):
		m.scroll(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.batch, cmd = m.batch.Update(msg)
	return m, cmd
}

func (m model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	hist := m.store.History()

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustListScroll(m.bodyHeight())
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(hist)-1 {
			m.cursor++
			m.adjustListScroll(m.bodyHeight())
		}

	case key.Matches(msg, keys.Delete):
		if m.cursor < len(hist) {
			m.store.RemoveFromHistory(hist[m.cursor].ID)
			m.cursor = max(0, min(m.cursor, len(hist)-2))
			m.adjustListScroll(m.bodyHeight())
			cmd := m.setStatus("entry deleted")
			return m, cmd
		}

	case key.Matches(msg, keys.ClearAll):
		m.store.ClearHistory()
		m.cursor, m.listOffset = 0, 0
		cmd := m.setStatus("history cleared")
		return m, cmd

	case key.Matches(msg, keys.Enter):
		if m.cursor < len(hist) {
			e := hist[m.cursor]
			_ = m.store.SetUnit(e.Unit)
			m.mode = modeToDate
			m.input.SetValue(timestamp.FormatNumber(e.Timestamp))
			m.input.CursorEnd()
			m.setTab(tabSingle)
			m.convert()
		}
	}
	return m, nil
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	var body string
	switch m.tab {
	case tabSingle:
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.input.View(),
			m.st.dim.Render(m.mode.String()),
			"",
			m.view.View())
	case tabBatch:
		body = lipgloss.JoinVertical(lipgloss.Left, m.batch.View(), "", m.view.View())
	case tabHistory:
		body = m.renderList(m.bodyWidth(), m.bodyHeight())
	case tabCode:
		body = m.view.View()
	}

	panel := m.st.panel.
		Width(m.bodyWidth()).
		Height(m.bodyHeight()).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, m.tabsRow(), panel, m.statusBar())
}

// helper methods

func (m model) bodyWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(m.width-2, 20)
}

func (m model) bodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	// tabs row (1) + status bar (1) + borders (2)
	return max(m.height-4, 5)
}

func (m *model) resize() {
	w, h := m.bodyWidth(), m.bodyHeight()
	m.input.Width = w - 4
	m.batch.SetWidth(w)
	m.batch.SetHeight(max(h/3, 3))

	m.view.Width = w
	switch m.tab {
	case tabSingle:
		m.view.Height = max(h-3, 1)
	case tabBatch:
		m.view.Height = max(h-m.batch.Height()-1, 1)
	default:
		m.view.Height = h
	}
}

func (m *model) applyTheme() {
	m.st = newStyles(m.store.State().IsDarkMode)
	m.input.PromptStyle = m.st.inputPrompt
	m.input.TextStyle = m.st.input
}

func (m *model) focus() {
	m.input.Blur()
	m.batch.Blur()
	switch m.tab {
	case tabSingle:
		m.input.Focus()
	case tabBatch:
		m.batch.Focus()
	}
}

func (m *model) setTab(t tuiTab) {
	m.tab = t
	if at, ok := t.appTab(); ok {
		_ = m.store.SetActiveTab(at)
	}
	m.focus()
	m.resize()
	m.refresh()
}

func (m *model) switchTab(step int) {
	n := len(tabOrder)
	m.setTab(tabOrder[((int(m.tab)+step)%n+n)%n])
}

func (m *model) scroll(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Up):
		m.view.LineUp(1)
	case key.Matches(msg, keys.Down):
		m.view.LineDown(1)
	case key.Matches(msg, keys.PageUp):
		m.view.LineUp(m.view.Height)
	case key.Matches(msg, keys.PageDown):
		m.view.LineDown(m.view.Height)
	}
}

// schedule queues a debounced conversion of the current input. Without a
// debouncer the conversion runs at once.
func (m *model) schedule() {
	if m.deb == nil {
		m.convert()
		return
	}
	m.store.SetLoading(true)
	out := m.out
	msg := debounceTickMsg{input: m.input.Value(), mode: m.mode}
	m.deb.Trigger(func() { out.send(msg) })
}

// convert runs the current input through the store in the active mode.
func (m *model) convert() {
	if m.deb != nil {
		m.deb.Cancel()
	}
	input := m.input.Value()

	var err error
	switch {
	case strings.TrimSpace(input) == "":
		m.store.ClearResult()
	case m.mode == modeFromDate:
		err = m.store.ConvertDate(input)
	default:
		m.store.SetInput(input)
		err = m.store.ConvertSingle()
	}
	m.store.SetLoading(false)

	if err != nil && !errors.Is(err, app.ErrEmptyInput) {
		m.log.Debug().Err(err).Str("input", input).Msg("live conversion")
		m.convErr = err
	} else {
		m.convErr = nil
	}
	m.refresh()
}

func (m *model) runBatch() tea.Cmd {
	m.store.ClearBatch()
	for _, in := range timestamp.SplitInputs(m.batch.Value()) {
		m.store.AddBatchItem(in)
	}
	res := m.store.ConvertBatch()
	m.refresh()
	if res == nil {
		return m.setStatus("nothing to convert")
	}
	return m.setStatus(fmt.Sprintf("%d converted, %d failed", res.Successful, res.Failed))
}

func (m *model) copyISO() tea.Cmd {
	res := m.store.State().CurrentResult
	if res == nil {
		return m.setStatus("nothing to copy")
	}
	if err := m.copyFn(res.HumanReadable.ISO8601); err != nil {
		m.log.Warn().Err(err).Msg("clipboard write")
		return m.setStatus("copy failed: " + err.Error())
	}
	return m.setStatus("copied " + res.HumanReadable.ISO8601)
}

// setStatus shows s until statusTimeout passes or a newer status replaces it.
func (m *model) setStatus(s string) tea.Cmd {
	m.statusSeq++
	m.status = s
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// refresh re-renders the viewport content for the active tab.
func (m *model) refresh() {
	state := m.store.State()
	switch m.tab {
	case tabSingle:
		m.view.SetContent(singleView(state, m.convErr, m.st))
	case tabBatch:
		m.view.SetContent(batchView(state, m.st))
	case tabCode:
		m.view.SetContent(codeView(state, m.input.Value(), m.st))
		m.view.GotoTop()
	}
}

func (m model) tabsRow() string {
	var parts []string
	for _, t := range tabOrder {
		if t == m.tab {
			parts = append(parts, m.st.tabActive.Render(t.String()))
		} else {
			parts = append(parts, m.st.tabInactive.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) statusBar() string {
	state := m.store.State()
	var parts []string
	parts = append(parts, "unit "+state.CurrentUnit.Short())
	tz := state.DefaultTimezone
	if tz == "" {
		tz = "Local"
	}
	parts = append(parts, tz)
	if state.IsLoading {
		parts = append(parts, "converting...")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	switch m.tab {
	case tabSingle:
		parts = append(parts, "C-t mode", "C-y copy", "C-n now", "C-p preset")
	case tabBatch:
		parts = append(parts, "C-s convert", "C-x clear")
	case tabHistory:
		parts = append(parts, "enter load", "d delete", "C clear")
	}
	parts = append(parts, "C-u unit", "tab switch", "Esc quit")
	return m.st.statusBar.Render(strings.Join(parts, " | "))
}
