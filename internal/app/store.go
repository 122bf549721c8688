package app

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

var (
	ErrEmptyInput   = errors.New("empty input")
	ErrInvalidInput = errors.New("invalid timestamp")
	ErrUnknownTab   = errors.New("unknown tab")
)

// Store owns State. All writes go through its methods, and every write is
// followed by a snapshot save. A Store is not safe for concurrent use.
type Store struct {
	state   State
	persist Persister
	log     zerolog.Logger
	now     func() time.Time
	newID   func() string
}

type Option func(*Store)

// WithPersister restores state from p and saves every mutation to it.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persist = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock replaces time.Now for history timestamps and relative phrases.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDefaults adjusts the default state before the snapshot is merged.
func WithDefaults(fn func(*State)) Option {
	return func(s *Store) { fn(&s.state) }
}

// New builds a Store from defaults, then merges any saved snapshot.
func New(opts ...Option) *Store {
	s := &Store{
		state: DefaultState(),
		log:   zerolog.Nop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.MaxHistoryItems = clampHistory(s.state.MaxHistoryItems)

	if s.persist != nil {
		snap, err := s.persist.Load()
		if err != nil {
			s.log.Warn().Err(err).Msg("load snapshot")
		} else {
			s.state = Merge(s.state, snap)
		}
	}
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	st := s.state
	st.History = append([]HistoryEntry(nil), s.state.History...)
	st.BatchItems = append([]timestamp.BatchItem(nil), s.state.BatchItems...)
	return st
}

func (s *Store) History() []HistoryEntry {
	return append([]HistoryEntry(nil), s.state.History...)
}

func (s *Store) Snapshot() Snapshot {
	return Project(s.state)
}

func (s *Store) save() {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(Project(s.state)); err != nil {
		s.log.Warn().Err(err).Msg("save snapshot")
	}
}

// single conversion

func (s *Store) SetInput(input string) {
	s.state.CurrentInput = input
	s.save()
}

func (s *Store) SetUnit(u timestamp.Unit) error {
	if !u.Valid() {
		return fmt.Errorf("%w: %q", timestamp.ErrUnknownUnit, u)
	}
	s.state.CurrentUnit = u
	s.save()
	return nil
}

// ConvertSingle converts CurrentInput in CurrentUnit. On success the result
// is stored and recorded in history; otherwise CurrentResult is cleared and
// the reason returned.
func (s *Store) ConvertSingle() error {
	input := strings.TrimSpace(s.state.CurrentInput)
	unit := s.state.CurrentUnit
	if input == "" {
		s.state.CurrentResult = nil
		s.save()
		return ErrEmptyInput
	}
	if !timestamp.Validate(input, unit) {
		s.state.CurrentResult = nil
		s.save()
		return ErrInvalidInput
	}

	res, err := timestamp.ConvertAt(timestamp.ParseNumber(input), unit, s.state.DefaultTimezone, s.now())
	if err != nil {
		s.log.Debug().Err(err).Str("input", input).Msg("convert")
		s.state.CurrentResult = nil
		s.save()
		return err
	}

	s.state.CurrentResult = res
	s.recordHistory(res, unit)
	s.save()
	return nil
}

// ConvertDate parses a date string into CurrentUnit, makes the resulting
// timestamp the current input and converts it.
func (s *Store) ConvertDate(input string) error {
	loc, err := timestamp.LoadZone(s.state.DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	v, err := timestamp.ParseDate(input, s.state.CurrentUnit, loc)
	if err != nil {
		s.state.CurrentResult = nil
		s.save()
		return err
	}
	s.state.CurrentInput = timestamp.FormatNumber(v)
	return s.ConvertSingle()
}

// ClearResult resets the current input and result.
func (s *Store) ClearResult() {
	s.state.CurrentInput = ""
	s.state.CurrentResult = nil
	s.save()
}

// batch conversion

func (s *Store) SetBatchItems(items []timestamp.BatchItem) {
	s.state.BatchItems = append([]timestamp.BatchItem(nil), items...)
	s.save()
}

// AddBatchItem appends a pending row for input in the current unit.
func (s *Store) AddBatchItem(input string) timestamp.BatchItem {
	n := timestamp.ParseNumber(input)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	item := timestamp.BatchItem{
		ID:       s.newID(),
		Input:    input,
		Original: n,
		Unit:     s.state.CurrentUnit,
	}
	s.state.BatchItems = append(s.state.BatchItems, item)
	s.save()
	return item
}

func (s *Store) RemoveBatchItem(id string) {
	items := s.state.BatchItems[:0:0]
	for _, it := range s.state.BatchItems {
		if it.ID != id {
			items = append(items, it)
		}
	}
	s.state.BatchItems = items
	s.save()
}

// ConvertBatch converts the raw inputs of the pending batch rows in the
// current unit and records every success in history. It returns nil when
// there are no rows.
func (s *Store) ConvertBatch() *timestamp.BatchResult {
	if len(s.state.BatchItems) == 0 {
		return nil
	}
	inputs := make([]string, len(s.state.BatchItems))
	for i, it := range s.state.BatchItems {
		inputs[i] = it.Input
	}

	unit := s.state.CurrentUnit
	res := timestamp.ConvertBatchAt(inputs, unit, s.state.DefaultTimezone, s.now())
	s.state.BatchResult = &res
	for _, it := range res.Items {
		if it.Result != nil {
			s.recordHistory(it.Result, unit)
		}
	}
	s.log.Debug().Int("total", res.Total).Int("failed", res.Failed).Msg("batch converted")
	s.save()
	return &res
}

func (s *Store) ClearBatch() {
	s.state.BatchItems = nil
	s.state.BatchResult = nil
	s.save()
}

// history

// RecordHistory prepends an entry for res and trims history to
// MaxHistoryItems, dropping the oldest entries.
func (s *Store) RecordHistory(res *timestamp.Result, unit timestamp.Unit) HistoryEntry {
	e := s.recordHistory(res, unit)
	s.save()
	return e
}

func (s *Store) recordHistory(res *timestamp.Result, unit timestamp.Unit) HistoryEntry {
	e := HistoryEntry{
		ID:          s.newID(),
		Timestamp:   res.Original,
		Unit:        unit,
		ConvertedAt: s.now(),
		Result:      res,
	}
	hist := make([]HistoryEntry, 0, len(s.state.History)+1)
	hist = append(hist, e)
	hist = append(hist, s.state.History...)
	if len(hist) > s.state.MaxHistoryItems {
		hist = hist[:s.state.MaxHistoryItems]
	}
	s.state.History = hist
	return e
}

func (s *Store) ClearHistory() {
	s.state.History = nil
	s.save()
}

// RemoveFromHistory drops the entry with id. Unknown ids are ignored.
func (s *Store) RemoveFromHistory(id string) {
	hist := s.state.History[:0:0]
	for _, e := range s.state.History {
		if e.ID != id {
			hist = append(hist, e)
		}
	}
	s.state.History = hist
	s.save()
}

// UI and settings

func (s *Store) SetActiveTab(t Tab) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTab, t)
	}
	s.state.ActiveTab = t
	s.save()
	return nil
}

func (s *Store) ToggleDarkMode() {
	s.state.IsDarkMode = !s.state.IsDarkMode
	s.save()
}

func (s *Store) SetLoading(loading bool) {
	s.state.IsLoading = loading
	s.save()
}

// SetDefaultTimezone rejects zones the system cannot load.
func (s *Store) SetDefaultTimezone(tz string) error {
	if _, err := timestamp.LoadZone(tz); err != nil {
		return err
	}
	s.state.DefaultTimezone = tz
	s.save()
	return nil
}

func (s *Store) SetShowRelativeTime(show bool) {
	s.state.ShowRelativeTime = show
	s.save()
}

// SetMaxHistoryItems clamps n to [MinHistoryItems, MaxHistoryItems] and
// trims history to the new bound.
func (s *Store) SetMaxHistoryItems(n int) {
	s.state.MaxHistoryItems = clampHistory(n)
	if len(s.state.History) > s.state.MaxHistoryItems {
		s.state.History = s.state.History[:s.state.MaxHistoryItems]
	}
	s.save()
}

// CurrentTimestamp is the wall clock in the current unit.
func (s *Store) CurrentTimestamp() float64 {
	return timestamp.CurrentAt(s.state.CurrentUnit, s.now())
}
