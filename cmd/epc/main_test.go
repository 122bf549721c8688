package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/config"
	"github.com/Zuo-Peng/epoch-converter/internal/store"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func TestSeedFromConfig(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.DefaultUnit = "ms"
	cfg.DefaultTimezone = "Asia/Tokyo"
	cfg.MaxHistoryItems = 20
	cfg.ShowRelativeTime = false

	st := app.DefaultState()
	seedFromConfig(cfg)(&st)
	assert.Equal(t, timestamp.Milliseconds, st.CurrentUnit)
	assert.Equal(t, "Asia/Tokyo", st.DefaultTimezone)
	assert.Equal(t, 20, st.MaxHistoryItems)
	assert.False(t, st.ShowRelativeTime)

	cfg.DefaultTimezone = ""
	st = app.DefaultState()
	seedFromConfig(cfg)(&st)
	assert.Equal(t, app.DefaultState().DefaultTimezone, st.DefaultTimezone, "empty zone keeps the environment zone")
}

func TestExplainConvertErr(t *testing.T) {
	err := explainConvertErr("abc", timestamp.Seconds, app.ErrInvalidInput)
	assert.EqualError(t, err, `invalid timestamp "abc" for unit seconds (must be between 0 and 2100-01-01)`)

	assert.EqualError(t, explainConvertErr("", timestamp.Seconds, app.ErrEmptyInput), "empty input")

	other := &timestamp.ConversionError{Err: timestamp.ErrUnknownTimezone}
	assert.Same(t, other, explainConvertErr("0", timestamp.Seconds, other))
}

func TestBatchInput(t *testing.T) {
	text, err := batchInput([]string{"0", "1,2"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, timestamp.SplitInputs(text))

	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("10\n20\n"), 0o644))
	text, err = batchInput(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "10\n20\n", text)

	_, err = batchInput(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "read input")
}

func TestResolveUnit(t *testing.T) {
	t.Cleanup(func() { flagUnit = "" })

	u, err := resolveUnit(timestamp.Milliseconds)
	require.NoError(t, err)
	assert.Equal(t, timestamp.Milliseconds, u)

	flagUnit = "us"
	u, err = resolveUnit(timestamp.Seconds)
	require.NoError(t, err)
	assert.Equal(t, timestamp.Microseconds, u)

	flagUnit = "weeks"
	_, err = resolveUnit(timestamp.Seconds)
	assert.ErrorIs(t, err, timestamp.ErrUnknownUnit)
}

func TestCheckDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epc.db")
	db, err := store.OpenDB(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Save(app.Snapshot{CurrentUnit: timestamp.Seconds, MaxHistoryItems: 50}))
	require.NoError(t, db.Close())

	var buf bytes.Buffer
	checkDB(&buf, path)
	out := buf.String()
	assert.Contains(t, out, "Schema: v1")
	assert.Contains(t, out, "Keys: 1 ("+store.SnapshotKey+")")
	assert.Contains(t, out, "0 history entries")
}

func TestResetSnapshot(t *testing.T) {
	db, err := store.OpenDB(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := app.New(app.WithPersister(db))
	require.NoError(t, st.SetUnit(timestamp.Milliseconds))

	require.NoError(t, resetSnapshot(db))
	snap, err := db.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)

	restored := app.New(app.WithPersister(db))
	assert.Equal(t, app.DefaultState().CurrentUnit, restored.State().CurrentUnit)
}
