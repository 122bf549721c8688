// Package export writes batch conversion results as CSV, JSON or YAML.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown export format")

var Header = []string{"input", "timestamp", "unit", "utc", "local", "iso8601", "error"}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write encodes items to w in the given format.
func Write(w io.Writer, f Format, items []timestamp.BatchItem) error {
	switch f {
	case FormatCSV:
		return CSV(w, items)
	case FormatJSON:
		return JSON(w, items)
	case FormatYAML:
		return YAML(w, items)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// CSV writes a header row followed by one row per item. Failed items leave
// the result columns empty and fill error.
func CSV(w io.Writer, items []timestamp.BatchItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, it := range items {
		if err := cw.Write(row(it)); err != nil {
			return fmt.Errorf("write csv row %s: %w", it.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(it timestamp.BatchItem) []string {
	r := []string{it.Input, "", string(it.Unit), "", "", "", it.Error}
	if it.Result != nil {
		r[1] = timestamp.FormatNumber(it.Original)
		r[3] = it.Result.HumanReadable.UTC
		r[4] = it.Result.HumanReadable.Local
		r[5] = it.Result.HumanReadable.ISO8601
	}
	return r
}

func JSON(w io.Writer, items []timestamp.BatchItem) error {
	if items == nil {
		items = []timestamp.BatchItem{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func YAML(w io.Writer, items []timestamp.BatchItem) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
