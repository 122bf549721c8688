package timestamp

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Layouts used for the canonical projections.
const (
	LayoutDate     = "2006-01-02"
	LayoutTime     = "15:04:05"
	LayoutDateTime = "2006-01-02 15:04:05"
	LayoutISO8601  = "2006-01-02T15:04:05.000Z"
)

// maxMillis is the widest instant a platform date can hold (±100,000,000 days).
const maxMillis = 8.64e15

type HumanReadable struct {
	UTC      string `json:"utc" yaml:"utc"`
	Local    string `json:"local" yaml:"local"`
	ISO8601  string `json:"iso8601" yaml:"iso8601"`
	Relative string `json:"relative" yaml:"relative"`
}

type Formatted struct {
	Date      string `json:"date" yaml:"date"`
	Time      string `json:"time" yaml:"time"`
	DateTime  string `json:"dateTime" yaml:"dateTime"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// Result is one successful conversion. Formatted.Timestamp is always whole
// seconds since the epoch, whatever Unit the input was in.
type Result struct {
	Original      float64       `json:"original" yaml:"original"`
	Unit          Unit          `json:"unit" yaml:"unit"`
	HumanReadable HumanReadable `json:"humanReadable" yaml:"humanReadable"`
	Formatted     Formatted     `json:"formatted" yaml:"formatted"`
}

// ToInstant scales ts to milliseconds and returns the matching UTC instant.
// Sub-millisecond precision is truncated toward zero.
func ToInstant(ts float64, unit Unit) (time.Time, error) {
	var ms float64
	switch unit {
	case Seconds:
		ms = ts * 1000
	case Milliseconds:
		ms = ts
	case Microseconds:
		ms = ts / 1000
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxMillis {
		return time.Time{}, ErrInvalidTimestamp
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

// FromInstant is the inverse of ToInstant. Seconds are floored; the other
// units keep millisecond precision.
func FromInstant(t time.Time, unit Unit) (float64, error) {
	ms := t.UnixMilli()
	switch unit {
	case Seconds:
		return math.Floor(float64(ms) / 1000), nil
	case Milliseconds:
		return float64(ms), nil
	case Microseconds:
		return float64(ms) * 1000, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
}

// Convert renders ts in every projection, using the wall clock for the
// relative phrase. An empty tz means the environment's zone.
func Convert(ts float64, unit Unit, tz string) (*Result, error) {
	return ConvertAt(ts, unit, tz, time.Now())
}

// ConvertAt is Convert with an explicit reference time.
func ConvertAt(ts float64, unit Unit, tz string, now time.Time) (*Result, error) {
	t, err := ToInstant(ts, unit)
	if err != nil {
		return nil, &ConversionError{Err: err}
	}
	loc, err := LoadZone(tz)
	if err != nil {
		return nil, &ConversionError{Err: err}
	}
	secs, _ := FromInstant(t, Seconds)

	local := t.In(loc)
	return &Result{
		Original: ts,
		Unit:     unit,
		HumanReadable: HumanReadable{
			UTC:      longForm(t, "UTC"),
			Local:    longForm(local, local.Format("MST")),
			ISO8601:  t.Format(LayoutISO8601),
			Relative: relative(t, now),
		},
		Formatted: Formatted{
			Date:      t.Format(LayoutDate),
			Time:      t.Format(LayoutTime),
			DateTime:  t.Format(LayoutDateTime),
			Timestamp: int64(secs),
		},
	}, nil
}

// relMagnitudes are go-humanize's defaults with the open-ended "a long
// while" bucket replaced by a year count.
var relMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "now", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 week %s", DivBy: 1},
	{D: humanize.Month, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "1 month %s", DivBy: 1},
	{D: humanize.Year, Format: "%d months %s", DivBy: humanize.Month},
	{D: 18 * humanize.Month, Format: "1 year %s", DivBy: 1},
	{D: 2 * humanize.Year, Format: "2 years %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d years %s", DivBy: humanize.Year},
}

// relative phrases t against now, e.g. "3 hours ago" or "57 years ago".
func relative(t, now time.Time) string {
	return humanize.CustomRelTime(t, now, "ago", "from now", relMagnitudes)
}

// LoadZone resolves an IANA zone name. "" and "Local" give the environment zone.
func LoadZone(tz string) (*time.Location, error) {
	switch tz {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTimezone, tz)
	}
	return loc, nil
}

// longForm renders "Thursday, January 1st, 1970 at 00:00:00 UTC".
func longForm(t time.Time, zone string) string {
	return fmt.Sprintf("%s, %s %s, %04d at %s %s",
		t.Weekday(), t.Month(), humanize.Ordinal(t.Day()), t.Year(), t.Format(LayoutTime), zone)
}
