package timestamp

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numberPrefix matches the longest leading decimal literal of a string.
var numberPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseNumber reads the leading decimal number of s, ignoring leading
// whitespace and any trailing garbage ("12abc" is 12). It returns NaN when s
// does not start with a number.
func ParseNumber(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	lit := numberPrefix.FindString(s)
	if lit == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

// Validate reports whether input is a usable timestamp in unit: a finite,
// non-negative number no later than 2100-01-01.
func Validate(input string, unit Unit) bool {
	if !unit.Valid() {
		return false
	}
	n := ParseNumber(input)
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return false
	}
	return n <= unit.maxValue()
}
