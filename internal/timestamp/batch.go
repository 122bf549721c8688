package timestamp

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Per-item error reasons.
const (
	ReasonEmptyInput       = "empty input"
	ReasonInvalidTimestamp = "invalid timestamp"
)

// BatchItem is one row of a batch. After processing exactly one of Result
// and Error is set.
type BatchItem struct {
	ID       string  `json:"id" yaml:"id"`
	Input    string  `json:"input" yaml:"input"`
	Original float64 `json:"original" yaml:"original"`
	Unit     Unit    `json:"unit" yaml:"unit"`
	Result   *Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the item converted successfully.
func (it BatchItem) OK() bool {
	return it.Result != nil && it.Error == ""
}

type BatchResult struct {
	Total      int         `json:"total" yaml:"total"`
	Successful int         `json:"successful" yaml:"successful"`
	Failed     int         `json:"failed" yaml:"failed"`
	Items      []BatchItem `json:"items" yaml:"items"`
}

// ConvertBatch converts every input independently. A bad row never aborts
// the batch; its reason is recorded on the item instead.
func ConvertBatch(inputs []string, unit Unit, tz string) BatchResult {
	return ConvertBatchAt(inputs, unit, tz, time.Now())
}

// ConvertBatchAt is ConvertBatch with an explicit reference time. Item ids
// are derived from now and the row index.
func ConvertBatchAt(inputs []string, unit Unit, tz string, now time.Time) BatchResult {
	items := make([]BatchItem, len(inputs))
	stamp := now.UnixMilli()
	for i, raw := range inputs {
		items[i] = convertItem(fmt.Sprintf("batch-%d-%d", stamp, i), raw, unit, tz, now)
	}

	res := BatchResult{Total: len(items), Items: items}
	for _, it := range items {
		if it.OK() {
			res.Successful++
		}
	}
	res.Failed = res.Total - res.Successful
	return res
}

func convertItem(id, raw string, unit Unit, tz string, now time.Time) BatchItem {
	input := strings.TrimSpace(raw)
	item := BatchItem{ID: id, Input: input, Unit: unit}
	if input == "" {
		item.Error = ReasonEmptyInput
		return item
	}

	n := ParseNumber(input)
	if !math.IsNaN(n) && !math.IsInf(n, 0) {
		item.Original = n
	}
	if !Validate(input, unit) {
		item.Error = ReasonInvalidTimestamp
		return item
	}

	res, err := ConvertAt(n, unit, tz, now)
	if err != nil {
		var convErr *ConversionError
		if errors.As(err, &convErr) {
			item.Error = convErr.Error()
		} else {
			item.Error = err.Error()
		}
		return item
	}
	item.Result = res
	return item
}

// SplitInputs breaks pasted text into batch rows: one per line, with commas
// and semicolons also treated as separators. Blank rows are kept so they
// surface as "empty input".
func SplitInputs(text string) []string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			out = append(out, line)
			continue
		}
		out = append(out, strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ';' })...)
	}
	return out
}
