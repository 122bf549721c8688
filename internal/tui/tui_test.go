package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func newTestModel(t *testing.T, delay time.Duration) (model, *app.Store, *string) {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	s := app.New(app.WithClock(clock), app.WithDefaults(func(st *app.State) {
		st.DefaultTimezone = "UTC"
	}))
	m := newModel(s, Options{Debounce: delay, Log: zerolog.Nop()})
	copied := new(string)
	m.copyFn = func(v string) error {
		*copied = v
		return nil
	}
	t.Cleanup(func() {
		if m.deb != nil {
			m.deb.Cancel()
		}
	})
	return m, s, copied
}

func send(m model, msg tea.Msg) model {
	next, _ := m.Update(msg)
	return next.(model)
}

func typeText(m model, s string) model {
	for _, r := range s {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestLiveConversion_Immediate(t *testing.T) {
	m, s, _ := newTestModel(t, 0)
	m = typeText(m, "0")

	st := s.State()
	require.NotNil(t, st.CurrentResult)
	assert.Equal(t, "1970-01-01T00:00:00.000Z", st.CurrentResult.HumanReadable.ISO8601)
	assert.Len(t, st.History, 1)
	assert.NoError(t, m.convErr)
}

func TestLiveConversion_Debounced(t *testing.T) {
	m, s, _ := newTestModel(t, time.Hour)
	m = typeText(m, "1640995200")

	assert.Nil(t, s.State().CurrentResult, "nothing converts before the quiet interval")
	assert.True(t, s.State().IsLoading)
	assert.True(t, m.deb.Pending())

	m = send(m, debounceTickMsg{input: "164", mode: modeToDate})
	assert.Nil(t, s.State().CurrentResult, "stale tick is dropped")

	m = send(m, debounceTickMsg{input: "1640995200", mode: modeToDate})
	st := s.State()
	require.NotNil(t, st.CurrentResult)
	assert.Equal(t, "2022-01-01T00:00:00.000Z", st.CurrentResult.HumanReadable.ISO8601)
	assert.False(t, st.IsLoading)
	assert.False(t, m.deb.Pending())
	assert.Len(t, st.History, 1)
}

func TestLiveConversion_Invalid(t *testing.T) {
	m, s, _ := newTestModel(t, 0)
	m = typeText(m, "abc")

	assert.ErrorIs(t, m.convErr, app.ErrInvalidInput)
	assert.Nil(t, s.State().CurrentResult)
	assert.Contains(t, singleView(s.State(), m.convErr, m.st), "invalid timestamp")
	assert.Empty(t, s.History())
}

func TestUnitCycle(t *testing.T) {
	m, s, _ := newTestModel(t, 0)
	m = typeText(m, "1000")
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlU})

	st := s.State()
	assert.Equal(t, timestamp.Milliseconds, st.CurrentUnit)
	require.NotNil(t, st.CurrentResult)
	assert.Equal(t, "1970-01-01T00:00:01.000Z", st.CurrentResult.HumanReadable.ISO8601)
	assert.Equal(t, "unit: milliseconds", m.status)
}

func TestFromDateMode(t *testing.T) {
	m, s, _ := newTestModel(t, 0)
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, modeFromDate, m.mode)

	m = typeText(m, "2022-01-01")
	st := s.State()
	assert.NoError(t, m.convErr)
	assert.Equal(t, "1640995200", st.CurrentInput)
	require.NotNil(t, st.CurrentResult)
	assert.Equal(t, "2022-01-01T00:00:00.000Z", st.CurrentResult.HumanReadable.ISO8601)
}

func TestCopyISO(t *testing.T) {
	m, _, copied := newTestModel(t, 0)
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "nothing to copy", m.status)

	m = typeText(m, "0")
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "1970-01-01T00:00:00.000Z", *copied)
	assert.Equal(t, "copied 1970-01-01T00:00:00.000Z", m.status)
}

func TestStatusClears(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	first := m.statusSeq
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlU})

	m = send(m, clearStatusMsg{seq: first})
	assert.NotEmpty(t, m.status, "older timer does not clear a newer status")

	m = send(m, clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestBatchTab(t *testing.T) {
	m, s, _ := newTestModel(t, 0)
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabBatch, m.tab)
	assert.Equal(t, app.TabBatch, s.State().ActiveTab)

	m.batch.SetValue("0\nabc")
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	st := s.State()
	require.NotNil(t, st.BatchResult)
	assert.Equal(t, 2, st.BatchResult.Total)
	assert.Equal(t, 1, st.BatchResult.Failed)
	assert.Equal(t, "1 converted, 1 failed", m.status)
	assert.Len(t, st.History, 1)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Nil(t, s.State().BatchResult)
	assert.Empty(t, m.batch.Value())

	send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, s.State().BatchResult)
}

func TestHistoryTab(t *testing.T) {
	m, s, _ := newTestModel(t, 0)
	for _, v := range []string{"0", "60", "120"} {
		s.SetInput(v)
		require.NoError(t, s.ConvertSingle())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, tabHistory, m.tab)
	assert.Equal(t, app.TabCode, s.State().ActiveTab, "history view is not persisted")

	m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)

	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	hist := s.History()
	require.Len(t, hist, 2)
	assert.Equal(t, float64(120), hist[0].Timestamp)
	assert.Equal(t, float64(0), hist[1].Timestamp)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, tabSingle, m.tab)
	assert.Equal(t, "0", m.input.Value())
	require.NotNil(t, s.State().CurrentResult)

	m.setTab(tabHistory)
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'C'}})
	assert.Empty(t, s.History())
	assert.Equal(t, "history cleared", m.status)
}

func TestDarkModeToggle(t *testing.T) {
	m, s, _ := newTestModel(t, 0)
	before := s.State().IsDarkMode
	send(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, !before, s.State().IsDarkMode)
}

func TestView(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	assert.Empty(t, m.View(), "nothing before the first size message")

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = typeText(m, "0")
	out := m.View()
	assert.Contains(t, out, "Single")
	assert.Contains(t, out, "History")
	assert.Contains(t, out, "1970-01-01T00:00:00.000Z")

	for range tabOrder {
		m = send(m, tea.KeyMsg{Type: tea.KeyTab})
		assert.NotEmpty(t, m.View())
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(model).quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
