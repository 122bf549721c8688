package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func writeConfig(t *testing.T, body string) (path, home string) {
	t.Helper()
	home = t.TempDir()
	path = filepath.Join(Dir(home), "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path, home
}

func TestLoadFrom_NoFile(t *testing.T) {
	home := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(home, "absent.toml"), home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "epc", "epc.db"), cfg.DBPath)
	assert.Equal(t, timestamp.Seconds, cfg.Unit())
	assert.Equal(t, 50, cfg.MaxHistoryItems)
	assert.True(t, cfg.ShowRelativeTime)
	assert.Equal(t, 500, cfg.DebounceMs)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFrom_File(t *testing.T) {
	path, home := writeConfig(t, `
db_path = "~/data/epc.db"
default_unit = "ms"
default_timezone = "Europe/Berlin"
max_history_items = 20
show_relative_time = false
debounce_ms = 250

[log]
level = "debug"
format = "json"
file = "~/logs/epc.log"
`)
	cfg, err := LoadFrom(path, home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data", "epc.db"), cfg.DBPath)
	assert.Equal(t, timestamp.Milliseconds, cfg.Unit())
	assert.Equal(t, "Europe/Berlin", cfg.DefaultTimezone)
	assert.Equal(t, 20, cfg.MaxHistoryItems)
	assert.False(t, cfg.ShowRelativeTime)
	assert.Equal(t, 250, cfg.DebounceMs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, filepath.Join(home, "logs", "epc.log"), cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB, "unset keys keep defaults")
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]string{
		"unit":     `default_unit = "minutes"`,
		"timezone": `default_timezone = "Nowhere/Zone"`,
		"history":  `max_history_items = 500`,
		"level":    "[log]\nlevel = \"loud\"",
	}
	for name, body := range tests {
		path, home := writeConfig(t, body)
		_, err := LoadFrom(path, home)
		assert.Error(t, err, name)
	}
}

func TestLoadFrom_BadTOML(t *testing.T) {
	path, home := writeConfig(t, "db_path = ")
	_, err := LoadFrom(path, home)
	assert.ErrorContains(t, err, "parse config")
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/h/x", expandHome("~/x", "/h"))
	assert.Equal(t, "/abs", expandHome("/abs", "/h"))
	assert.Equal(t, "~", expandHome("~", "/h"))
}

func TestTemplateParses(t *testing.T) {
	path, home := writeConfig(t, Template)
	assert.Equal(t, Path(home), path)

	cfg, err := LoadFrom(path, home)
	require.NoError(t, err)
	assert.Equal(t, Default(home), cfg)
}
