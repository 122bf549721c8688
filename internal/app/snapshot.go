package app

import "github.com/Zuo-Peng/epoch-converter/internal/timestamp"

// Snapshot is the persisted subset of State.
type Snapshot struct {
	History          []HistoryEntry `json:"history"`
	IsDarkMode       bool           `json:"isDarkMode"`
	DefaultTimezone  string         `json:"defaultTimezone"`
	ShowRelativeTime bool           `json:"showRelativeTime"`
	MaxHistoryItems  int            `json:"maxHistoryItems"`
	CurrentUnit      timestamp.Unit `json:"currentUnit"`
}

// Persister stores and loads the snapshot. Load returns (nil, nil) when
// nothing has been saved yet.
type Persister interface {
	Load() (*Snapshot, error)
	Save(Snapshot) error
}

// Project returns the persisted subset of s.
func Project(s State) Snapshot {
	hist := make([]HistoryEntry, len(s.History))
	copy(hist, s.History)
	return Snapshot{
		History:          hist,
		IsDarkMode:       s.IsDarkMode,
		DefaultTimezone:  s.DefaultTimezone,
		ShowRelativeTime: s.ShowRelativeTime,
		MaxHistoryItems:  s.MaxHistoryItems,
		CurrentUnit:      s.CurrentUnit,
	}
}

// Merge applies a loaded snapshot on top of base. Transient fields keep
// their base values; invalid persisted values fall back to base.
func Merge(base State, snap *Snapshot) State {
	if snap == nil {
		return base
	}
	s := base
	s.IsDarkMode = snap.IsDarkMode
	s.ShowRelativeTime = snap.ShowRelativeTime
	if snap.DefaultTimezone != "" {
		if _, err := timestamp.LoadZone(snap.DefaultTimezone); err == nil {
			s.DefaultTimezone = snap.DefaultTimezone
		}
	}
	if snap.CurrentUnit.Valid() {
		s.CurrentUnit = snap.CurrentUnit
	}
	if snap.MaxHistoryItems != 0 {
		s.MaxHistoryItems = clampHistory(snap.MaxHistoryItems)
	}

	s.History = nil
	for _, e := range snap.History {
		if e.Result == nil {
			continue
		}
		s.History = append(s.History, e)
	}
	if len(s.History) > s.MaxHistoryItems {
		s.History = s.History[:s.MaxHistoryItems]
	}
	return s
}
