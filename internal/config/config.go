package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

type LogConfig struct {
	Level      string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `toml:"format" validate:"omitempty,oneof=console json text"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" validate:"min=1"`
	MaxBackups int    `toml:"max_backups" validate:"min=0"`
}

// Config seeds first-run settings. Once a snapshot exists the persisted
// settings take precedence over the file.
type Config struct {
	DBPath           string    `toml:"db_path" validate:"required"`
	DefaultUnit      string    `toml:"default_unit" validate:"omitempty,unit"`
	DefaultTimezone  string    `toml:"default_timezone" validate:"omitempty,timezone"`
	MaxHistoryItems  int       `toml:"max_history_items" validate:"min=10,max=100"`
	ShowRelativeTime bool      `toml:"show_relative_time"`
	DebounceMs       int       `toml:"debounce_ms" validate:"min=0,max=5000"`
	Log              LogConfig `toml:"log"`
}

// Dir is the configuration directory under home.
func Dir(home string) string {
	return filepath.Join(home, ".config", "epc")
}

func Default(home string) *Config {
	return &Config{
		DBPath:           filepath.Join(Dir(home), "epc.db"),
		DefaultUnit:      string(timestamp.Seconds),
		MaxHistoryItems:  50,
		ShowRelativeTime: true,
		DebounceMs:       500,
		Log: LogConfig{
			Level:      "warn",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Template is written when the config file is first opened for editing.
const Template = `# epc configuration. Values here seed first-run settings; once settings
# are saved (from the UI or "epc settings") the saved values win.

# db_path = "~/.config/epc/epc.db"
# default_unit = "seconds"        # seconds, milliseconds, microseconds
# default_timezone = ""           # IANA name; empty means the system zone
# max_history_items = 50          # 10..100
# show_relative_time = true
# debounce_ms = 500

[log]
# level = "warn"                  # debug, info, warn, error
# format = "console"              # console, json, text
# file = ""                       # e.g. "~/.config/epc/epc.log"
# max_size_mb = 10
# max_backups = 3
`

// Path is the config file location under home.
func Path(home string) string {
	return filepath.Join(Dir(home), "config.toml")
}

// Load reads ~/.config/epc/config.toml, if present, over the defaults.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(Path(home), home)
}

// LoadFrom reads cfgPath over the defaults for home. A missing file is not
// an error.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := Default(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.Log.File = expandHome(cfg.Log.File, home)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

// Validate checks field ranges and formats.
func (c *Config) Validate() error {
	v := validator.New()
	_ = v.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		_, err := timestamp.ParseUnit(fl.Field().String())
		return err == nil
	})

	err := v.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

// Unit is DefaultUnit as a timestamp.Unit, falling back to seconds.
func (c *Config) Unit() timestamp.Unit {
	u, err := timestamp.ParseUnit(c.DefaultUnit)
	if err != nil {
		return timestamp.Seconds
	}
	return u
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
