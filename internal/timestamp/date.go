package timestamp

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// zonedLayouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

// localLayouts are read in the caller's zone.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseDate converts a date string into a timestamp in unit. ISO dates
// without a time are UTC; date-times without an offset are read in loc
// (nil means UTC). A plain number is taken as a timestamp already in unit.
func ParseDate(s string, unit Unit, loc *time.Location) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := ToInstant(n, unit)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		return FromInstant(t, unit)
	}

	t, ok := parseTime(s, loc)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return FromInstant(t, unit)
}

func parseTime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(LayoutDate, s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Current returns the wall-clock time as a timestamp in unit.
func Current(unit Unit) float64 {
	return CurrentAt(unit, time.Now())
}

// CurrentAt is Current for an explicit instant.
func CurrentAt(unit Unit, now time.Time) float64 {
	v, err := FromInstant(now, unit)
	if err != nil {
		return 0
	}
	return v
}

// Preset is a quick-pick value offered next to the input.
type Preset struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Presets returns Now, Yesterday and Last Week relative to now, in unit.
func Presets(unit Unit, now time.Time) []Preset {
	day := 24 * time.Hour
	return []Preset{
		{Label: "Now", Value: CurrentAt(unit, now)},
		{Label: "Yesterday", Value: CurrentAt(unit, now.Add(-day))},
		{Label: "Last Week", Value: CurrentAt(unit, now.Add(-7*day))},
	}
}

// FormatNumber prints a timestamp without exponent or trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
