package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

// linesPerItem is the number of terminal lines each history entry occupies.
const linesPerItem = 2

// renderList renders the history tab with scrolling.
func (m model) renderList(width, height int) string {
	hist := m.store.History()
	if len(hist) == 0 {
		return lipgloss.NewStyle().
			Foreground(m.st.dim.GetForeground()).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No history yet")
	}

	now := time.Now()
	var lines []string
	for i, e := range hist {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatEntry(e, width, i == m.cursor, now, m.st)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatEntry formats a history entry as two lines:
//
//	line 1: [>] value unit  iso8601
//	line 2:    utc long form, age (dimmed)
func formatEntry(e app.HistoryEntry, width int, selected bool, now time.Time, st styles) []string {
	iso, utc := "", ""
	if e.Result != nil {
		iso = e.Result.HumanReadable.ISO8601
		utc = e.Result.HumanReadable.UTC
	}

	value := fmt.Sprintf("%s %s", timestamp.FormatNumber(e.Timestamp), e.Unit.Short())
	line1 := fmt.Sprintf("%s  %s", runewidth.FillRight(value, 22), st.iso.Render(iso))
	if selected {
		line1 = st.selected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	detail := utc + ", " + humanize.RelTime(e.ConvertedAt, now, "ago", "from now")
	if detailMax := max(width-4, 0); runewidth.StringWidth(detail) > detailMax {
		detail = runewidth.Truncate(detail, detailMax, "")
	}
	line2 := "    " + st.dim.Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := max(listHeight/linesPerItem, 1)
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
