package timestamp

import (
	"fmt"
	"strings"
)

// Unit is the scale a numeric timestamp is expressed in.
type Unit string

const (
	Seconds      Unit = "seconds"
	Milliseconds Unit = "milliseconds"
	Microseconds Unit = "microseconds"
)

// Units lists every supported unit in display order.
var Units = []Unit{Seconds, Milliseconds, Microseconds}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	switch u {
	case Seconds, Milliseconds, Microseconds:
		return true
	}
	return false
}

// Short returns the abbreviated unit label ("s", "ms", "µs").
func (u Unit) Short() string {
	switch u {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "µs"
	}
	return string(u)
}

// Next cycles through Units.
func (u Unit) Next() Unit {
	for i, v := range Units {
		if v == u {
			return Units[(i+1)%len(Units)]
		}
	}
	return Seconds
}

// maxValue is the largest accepted input per unit (2100-01-01T00:00:00Z).
func (u Unit) maxValue() float64 {
	switch u {
	case Seconds:
		return 4102444800
	case Milliseconds:
		return 4102444800000
	case Microseconds:
		return 4102444800000000
	}
	return 0
}

// ParseUnit accepts a unit name or one of its common abbreviations.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sec", "secs", "second", "seconds":
		return Seconds, nil
	case "ms", "milli", "millis", "millisecond", "milliseconds":
		return Milliseconds, nil
	case "us", "µs", "micro", "micros", "microsecond", "microseconds":
		return Microseconds, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}
