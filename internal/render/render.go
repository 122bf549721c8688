package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/codegen"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

const (
	colorReset   = "\033[0m"
	colorLabel   = "\033[1;34m" // bold blue
	colorOK      = "\033[1;32m" // bold green
	colorDim     = "\033[2m"
	colorBoldRed = "\033[1;31m"
	colorHeader  = "\033[1m"
)

type Options struct {
	Color        bool
	Width        int       // wrap width (0 = no wrap)
	ShowRelative bool      // include the relative phrase in result blocks
	Now          time.Time // reference for history ages; zero means time.Now
}

func (o Options) paint(color, s string) string {
	if !o.Color || s == "" {
		return s
	}
	return color + s + colorReset
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)
		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}
		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}
	if len(result) == 0 {
		return []string{""}
	}
	return result
}

type writer struct {
	b     strings.Builder
	width int
}

func (w *writer) line(s string) {
	for _, wl := range wrapLine(s, w.width) {
		w.b.WriteString(wl)
		w.b.WriteString("\n")
	}
}

// cell pads or truncates s to exactly n display columns.
func cell(s string, n int) string {
	return runewidth.FillRight(runewidth.Truncate(s, n, "…"), n)
}

// Result renders one conversion as a labelled block.
func Result(r *timestamp.Result, opts Options) string {
	if r == nil {
		return ""
	}
	w := &writer{width: opts.Width}
	field := func(label, value string) {
		w.line(opts.paint(colorLabel, cell(label, 10)) + " " + value)
	}

	field("Input", fmt.Sprintf("%s %s", timestamp.FormatNumber(r.Original), r.Unit))
	field("UTC", r.HumanReadable.UTC)
	field("Local", r.HumanReadable.Local)
	field("ISO 8601", opts.paint(colorOK, r.HumanReadable.ISO8601))
	if opts.ShowRelative {
		field("Relative", r.HumanReadable.Relative)
	}
	field("Date", r.Formatted.Date)
	field("Time", r.Formatted.Time)
	field("Unix", fmt.Sprintf("%d", r.Formatted.Timestamp))
	return w.b.String()
}

// Batch renders one row per item plus a summary line. Failed rows carry
// their reason in place of the ISO-8601 column.
func Batch(res timestamp.BatchResult, opts Options) string {
	w := &writer{width: opts.Width}

	inW := len("input")
	for _, it := range res.Items {
		inW = max(inW, runewidth.StringWidth(it.Input))
	}
	inW = min(inW, 24)

	w.line(opts.paint(colorHeader, fmt.Sprintf("%-4s %s  %s", "#", cell("input", inW), "result")))
	for i, it := range res.Items {
		var out string
		if it.OK() {
			out = it.Result.HumanReadable.ISO8601
			if opts.ShowRelative {
				out += opts.paint(colorDim, " ("+it.Result.HumanReadable.Relative+")")
			}
		} else {
			out = opts.paint(colorBoldRed, "error: "+it.Error)
		}
		w.line(fmt.Sprintf("%-4d %s  %s", i+1, cell(it.Input, inW), out))
	}
	w.line(opts.paint(colorDim, fmt.Sprintf("%d total, %d successful, %d failed", res.Total, res.Successful, res.Failed)))
	return w.b.String()
}

// History renders entries newest first, as stored.
func History(entries []app.HistoryEntry, opts Options) string {
	if len(entries) == 0 {
		return opts.paint(colorDim, "(no history)") + "\n"
	}
	w := &writer{width: opts.Width}
	now := opts.now()
	for i, e := range entries {
		iso := ""
		if e.Result != nil {
			iso = e.Result.HumanReadable.ISO8601
		}
		value := fmt.Sprintf("%s %s", timestamp.FormatNumber(e.Timestamp), e.Unit.Short())
		age := humanize.RelTime(e.ConvertedAt, now, "ago", "from now")
		w.line(fmt.Sprintf("%3d  %s  %s  %s  %s", i+1,
			opts.paint(colorDim, shortID(e.ID)),
			cell(value, 22),
			opts.paint(colorOK, iso),
			opts.paint(colorDim, age)))
	}
	return w.b.String()
}

// Stats renders conversion counts and the unit popularity table.
func Stats(s app.Stats, opts Options) string {
	w := &writer{width: opts.Width}
	w.line(opts.paint(colorLabel, cell("Total", 10)) + " " + humanize.Comma(int64(s.TotalConversions)))
	w.line(opts.paint(colorLabel, cell("Today", 10)) + " " + humanize.Comma(int64(s.TodayConversions)))
	if len(s.PopularUnits) > 0 {
		w.line(opts.paint(colorHeader, "Units"))
		for _, uc := range s.PopularUnits {
			w.line(fmt.Sprintf("  %s %d", cell(string(uc.Unit), 14), uc.Count))
		}
	}
	return w.b.String()
}

// Examples renders code snippets under a header per language.
func Examples(exs []codegen.Example, opts Options) string {
	var b strings.Builder
	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(opts.paint(colorHeader, "--- "+ex.Name+" ---"))
		b.WriteString("\n")
		b.WriteString(ex.Code)
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
