// Package logging builds the zerolog logger from the [log] config section.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Zuo-Peng/epoch-converter/internal/config"
)

type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
	FormatText    Format = "text"
)

// ParseFormat falls back to console for unknown names.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON
	case FormatText:
		return FormatText
	default:
		return FormatConsole
	}
}

// ParseLevel falls back to warn for unknown or empty names.
func ParseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.WarnLevel
	}
	return lvl
}

func formatWriter(f Format, out io.Writer, noColor bool) io.Writer {
	switch f {
	case FormatJSON:
		return out
	case FormatText:
		noColor = true
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: noColor}
}

// Logger wraps the configured zerolog logger and owns its rotating file.
type Logger struct {
	zerolog.Logger
	file *lumberjack.Logger
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New builds a logger writing to console (when non-nil) and to cfg.File
// (when set). The file writer never uses colour.
func New(cfg config.LogConfig, console io.Writer) (*Logger, error) {
	format := ParseFormat(cfg.Format)
	var writers []io.Writer
	l := &Logger{}

	if console != nil {
		writers = append(writers, formatWriter(format, console, false))
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(cfg.MaxSizeMB, 1),
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}
		writers = append(writers, formatWriter(format, l.file, true))
	}

	if len(writers) == 0 {
		l.Logger = zerolog.Nop()
		return l, nil
	}

	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
	return l, nil
}
