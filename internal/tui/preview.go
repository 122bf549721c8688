package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/codegen"
	"github.com/Zuo-Peng/epoch-converter/internal/render"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

// singleView renders the current result, or the reason there is none.
func singleView(state app.State, convErr error, st styles) string {
	if convErr != nil {
		return st.err.Render(convErr.Error())
	}
	r := state.CurrentResult
	if r == nil {
		return st.dim.Render("Type a timestamp, or C-n for now.")
	}

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(st.label.Render(label))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("UTC", st.value.Render(r.HumanReadable.UTC))
	row("Local", st.value.Render(r.HumanReadable.Local))
	row("ISO 8601", st.iso.Render(r.HumanReadable.ISO8601))
	if state.ShowRelativeTime {
		row("Relative", st.value.Render(r.HumanReadable.Relative))
	}
	row("Date", st.value.Render(r.Formatted.Date))
	row("Time", st.value.Render(r.Formatted.Time))
	row("Unix", st.value.Render(fmt.Sprintf("%d", r.Formatted.Timestamp)))
	return b.String()
}

func batchView(state app.State, st styles) string {
	if state.BatchResult == nil {
		return st.dim.Render("C-s converts every row in " + string(state.CurrentUnit) + ".")
	}
	return render.Batch(*state.BatchResult, render.Options{
		Color:        true,
		ShowRelative: state.ShowRelativeTime,
	})
}

// codeView shows examples for the typed value, or for now when the input
// is not a number.
func codeView(state app.State, input string, st styles) string {
	ts := timestamp.ParseNumber(input)
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		ts = timestamp.Current(state.CurrentUnit)
	}
	exs, err := codegen.Examples(ts, state.CurrentUnit)
	if err != nil {
		return st.err.Render(err.Error())
	}
	return render.Examples(exs, render.Options{Color: true})
}
