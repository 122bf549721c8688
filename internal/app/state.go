// Package app holds the application state container: the single owner of
// the current conversion, batch rows, history and user settings.
package app

import (
	"time"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

type Tab string

const (
	TabSingle Tab = "single"
	TabBatch  Tab = "batch"
	TabCode   Tab = "code"
)

// Tabs lists the selectable tabs in display order.
var Tabs = []Tab{TabSingle, TabBatch, TabCode}

func (t Tab) Valid() bool {
	switch t {
	case TabSingle, TabBatch, TabCode:
		return true
	}
	return false
}

const (
	MinHistoryItems     = 10
	MaxHistoryItems     = 100
	DefaultHistoryItems = 50
)

// HistoryEntry is an immutable record of one successful conversion.
type HistoryEntry struct {
	ID          string            `json:"id"`
	Timestamp   float64           `json:"timestamp"`
	Unit        timestamp.Unit    `json:"unit"`
	ConvertedAt time.Time         `json:"convertedAt"`
	Result      *timestamp.Result `json:"result"`
}

// State is the full application record. Only the fields listed in Snapshot
// survive a restart.
type State struct {
	CurrentInput  string
	CurrentUnit   timestamp.Unit
	CurrentResult *timestamp.Result

	History []HistoryEntry

	BatchItems  []timestamp.BatchItem
	BatchResult *timestamp.BatchResult

	IsDarkMode bool
	IsLoading  bool
	ActiveTab  Tab

	DefaultTimezone  string
	ShowRelativeTime bool
	MaxHistoryItems  int
}

// DefaultState is the state before any snapshot is applied.
func DefaultState() State {
	return State{
		CurrentUnit:      timestamp.Seconds,
		ActiveTab:        TabSingle,
		DefaultTimezone:  time.Local.String(),
		ShowRelativeTime: true,
		MaxHistoryItems:  DefaultHistoryItems,
	}
}

func clampHistory(n int) int {
	return max(MinHistoryItems, min(MaxHistoryItems, n))
}
