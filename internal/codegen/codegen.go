// Package codegen renders short snippets showing how to convert a timestamp
// in several programming languages.
package codegen

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"text/template"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

var ErrUnknownLanguage = errors.New("unknown language")

type Language struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var Languages = []Language{
	{ID: "javascript", Name: "JavaScript"},
	{ID: "python", Name: "Python"},
	{ID: "php", Name: "PHP"},
	{ID: "java", Name: "Java"},
	{ID: "go", Name: "Go"},
}

type Example struct {
	Language
	Code string `json:"code"`
}

type data struct {
	Unit timestamp.Unit
	TS   string // literal as typed, may carry a fraction
	Int  string // truncated integer literal
	ISO  string // empty when the value has no instant
}

// scale rewrites expr from one unit to another using integer factors.
func scale(from, to timestamp.Unit, expr string) string {
	exp := map[timestamp.Unit]int{timestamp.Seconds: 0, timestamp.Milliseconds: 3, timestamp.Microseconds: 6}
	d := exp[to] - exp[from]
	switch {
	case d > 0:
		return fmt.Sprintf("%s * %d", expr, int64(math.Pow10(d)))
	case d < 0:
		return fmt.Sprintf("%s / %d", expr, int64(math.Pow10(-d)))
	}
	return expr
}

var funcs = template.FuncMap{
	"toSeconds": func(u timestamp.Unit, expr string) string { return scale(u, timestamp.Seconds, expr) },
	"toMillis":  func(u timestamp.Unit, expr string) string { return scale(u, timestamp.Milliseconds, expr) },
	"fromSeconds": func(u timestamp.Unit, expr string) string {
		return scale(timestamp.Seconds, u, expr)
	},
	"fromMillis": func(u timestamp.Unit, expr string) string {
		return scale(timestamp.Milliseconds, u, expr)
	},
	"goTime": func(u timestamp.Unit) string {
		switch u {
		case timestamp.Milliseconds:
			return "time.UnixMilli(ts)"
		case timestamp.Microseconds:
			return "time.UnixMicro(ts)"
		}
		return "time.Unix(ts, 0)"
	},
	"goNow": func(u timestamp.Unit) string {
		switch u {
		case timestamp.Milliseconds:
			return "time.Now().UnixMilli()"
		case timestamp.Microseconds:
			return "time.Now().UnixMicro()"
		}
		return "time.Now().Unix()"
	},
}

var sources = map[string]string{
	"javascript": `// Convert a Unix timestamp ({{.Unit}}) to a Date
const timestamp = {{.TS}};
const date = new Date({{toMillis .Unit "timestamp"}});

console.log(date.toISOString());
{{- if .ISO}}
// Output: "{{.ISO}}"
{{- end}}

// Current Unix timestamp in {{.Unit}}
const now = Math.floor({{fromMillis .Unit "Date.now()"}});
console.log(now);
`,
	"python": `import datetime

# Convert a Unix timestamp ({{.Unit}}) to a datetime
timestamp = {{.TS}}
dt = datetime.datetime.fromtimestamp({{toSeconds .Unit "timestamp"}}, tz=datetime.timezone.utc)

print(dt.strftime('%Y-%m-%d %H:%M:%S'))
print(dt.isoformat())

# Current Unix timestamp in {{.Unit}}
now = datetime.datetime.now(tz=datetime.timezone.utc)
print(int({{fromSeconds .Unit "now.timestamp()"}}))
`,
	"php": `<?php
// Convert a Unix timestamp ({{.Unit}}) to a DateTime
$timestamp = {{.Int}};
$date = new DateTime('@' . (int) ({{toSeconds .Unit "$timestamp"}}));

echo $date->format('Y-m-d H:i:s') . "\n";
echo $date->format('c') . "\n";

// Current Unix timestamp in {{.Unit}}
echo (int) ({{fromSeconds .Unit "microtime(true)"}});
?>
`,
	"java": `import java.time.*;

// Convert a Unix timestamp ({{.Unit}}) to an Instant
long timestamp = {{.Int}}L;
Instant instant = Instant.ofEpochMilli({{toMillis .Unit "timestamp"}});

System.out.println(instant.toString());

// Current Unix timestamp in {{.Unit}}
long now = {{fromMillis .Unit "System.currentTimeMillis()"}};
System.out.println(now);
`,
	"go": `package main

import (
	"fmt"
	"time"
)

func main() {
	// Convert a Unix timestamp ({{.Unit}}) to a time.Time
	var ts int64 = {{.Int}}
	t := {{goTime .Unit}}.UTC()
	fmt.Println(t.Format(time.RFC3339))

	// Current Unix timestamp in {{.Unit}}
	fmt.Println({{goNow .Unit}})
}
`,
}

var templates = func() map[string]*template.Template {
	m := make(map[string]*template.Template, len(sources))
	for id, src := range sources {
		m[id] = template.Must(template.New(id).Funcs(funcs).Parse(src))
	}
	return m
}()

func newData(ts float64, unit timestamp.Unit) (data, error) {
	if !unit.Valid() {
		return data{}, fmt.Errorf("%w: %q", timestamp.ErrUnknownUnit, unit)
	}
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return data{}, timestamp.ErrInvalidTimestamp
	}
	d := data{
		Unit: unit,
		TS:   timestamp.FormatNumber(ts),
		Int:  timestamp.FormatNumber(math.Trunc(ts)),
	}
	if t, err := timestamp.ToInstant(ts, unit); err == nil {
		d.ISO = t.Format(timestamp.LayoutISO8601)
	}
	return d, nil
}

func render(lang Language, d data) (Example, error) {
	var b strings.Builder
	if err := templates[lang.ID].Execute(&b, d); err != nil {
		return Example{}, fmt.Errorf("render %s example: %w", lang.ID, err)
	}
	return Example{Language: lang, Code: b.String()}, nil
}

// Examples returns one snippet per supported language, in Languages order.
func Examples(ts float64, unit timestamp.Unit) ([]Example, error) {
	d, err := newData(ts, unit)
	if err != nil {
		return nil, err
	}
	out := make([]Example, 0, len(Languages))
	for _, lang := range Languages {
		ex, err := render(lang, d)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, nil
}

// ForLanguage returns the snippet for one language id or name.
func ForLanguage(id string, ts float64, unit timestamp.Unit) (Example, error) {
	lang, ok := Lookup(id)
	if !ok {
		return Example{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, id)
	}
	d, err := newData(ts, unit)
	if err != nil {
		return Example{}, err
	}
	return render(lang, d)
}

// Lookup matches a language by id or display name, case-insensitively.
// "js" and "golang" are accepted as aliases.
func Lookup(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "js":
		s = "javascript"
	case "golang":
		s = "go"
	}
	for _, lang := range Languages {
		if lang.ID == s || strings.ToLower(lang.Name) == s {
			return lang, true
		}
	}
	return Language{}, false
}
