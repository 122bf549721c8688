package app

import (
	"slices"
	"time"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

type UnitCount struct {
	Unit  timestamp.Unit `json:"unit"`
	Count int            `json:"count"`
}

type Stats struct {
	TotalConversions int         `json:"totalConversions"`
	TodayConversions int         `json:"todayConversions"`
	PopularUnits     []UnitCount `json:"popularUnits"`
}

// Stats summarises history: total entries, entries since local midnight,
// and units ordered by use.
func (s *Store) Stats() Stats {
	now := s.now()
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	st := Stats{TotalConversions: len(s.state.History)}
	counts := make(map[timestamp.Unit]int)
	for _, e := range s.state.History {
		if !e.ConvertedAt.Before(midnight) {
			st.TodayConversions++
		}
		counts[e.Unit]++
	}

	for _, u := range timestamp.Units {
		if n := counts[u]; n > 0 {
			st.PopularUnits = append(st.PopularUnits, UnitCount{Unit: u, Count: n})
		}
	}
	slices.SortStableFunc(st.PopularUnits, func(a, b UnitCount) int {
		return b.Count - a.Count
	})
	return st
}
